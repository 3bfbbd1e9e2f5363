package apikit

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestEditor mutates an outgoing request before it is sent (auth headers,
// tracing, signing). Editors run in registration order; an error aborts the
// request without touching the network.
type RequestEditor func(req *http.Request) error

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// injectorTransport applies the holder's configuration to each outgoing
// request: base URL resolution for relative requests, default headers,
// cookies, request editors and metrics. The header and cookie maps are the
// handle's own copies, cloned at construction; the mutating builders patch
// them in place on a live handle.
type injectorTransport struct {
	next    http.RoundTripper
	base    *url.URL
	headers map[string]string
	cookies map[string]string
	editors []RequestEditor
	metrics *MetricsCollector
	logger  Logger
}

func (t *injectorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.base != nil && !req.URL.IsAbs() {
		req.URL = t.base.ResolveReference(req.URL)
		req.Host = ""
	}
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	for k, v := range t.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	for _, edit := range t.editors {
		if err := edit(req); err != nil {
			return nil, err
		}
	}

	endpoint := endpointLabel(req)
	t.metrics.RecordRequestStart(req.Method, endpoint)
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	t.metrics.RecordRequestEnd(req.Method, endpoint)
	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	t.metrics.RecordRequest(req.Method, endpoint, statusCode, time.Since(start))

	if err != nil && t.logger != nil {
		t.logger.Debug("request failed", "method", req.Method, "url", req.URL.String(), "error", err.Error())
	}
	return resp, err
}

// endpointLabel extracts a simplified endpoint from the request for metrics.
func endpointLabel(req *http.Request) string {
	if req.URL == nil {
		return "unknown"
	}

	host := req.URL.Host
	path := req.URL.Path

	var builder strings.Builder
	builder.WriteString(host)

	if path != "" && path != "/" {
		builder.WriteString(path)
	} else {
		builder.WriteByte('/')
	}

	return builder.String()
}
