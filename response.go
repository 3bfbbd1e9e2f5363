package apikit

import (
	"encoding/json"
	"io"
	"net/http"
)

// Response is the envelope generated endpoint code returns: the raw status,
// body and headers plus the parsed payload when one was decoded.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	Parsed     any
}

// NewResponse drains and closes the HTTP response body and wraps the result.
// The caller must not touch resp.Body afterwards.
func NewResponse(resp *http.Response) (*Response, error) {
	body, err := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header,
	}, nil
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Unmarshaler decodes response bodies into typed payloads. The default is
// encoding/json; plug a custom one with WithUnmarshaler.
type Unmarshaler interface {
	Unmarshal(data []byte, v interface{}) error
}

type jsonUnmarshaler struct{}

func (jsonUnmarshaler) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// ParseJSON decodes the response body into T with encoding/json and records
// the result in r.Parsed. An empty body is not an error and yields a zero T.
func ParseJSON[T any](r *Response) (*T, error) {
	out := new(T)
	if len(r.Body) == 0 {
		r.Parsed = out
		return out, nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return nil, err
	}
	r.Parsed = out
	return out, nil
}
