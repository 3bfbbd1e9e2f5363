package apikit

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

// File wraps a binary payload for multipart upload: the stream plus an
// optional filename and MIME type. It is the Go rendering of the
// (filename, stream, mime-type) tuple multipart encoders consume.
type File struct {
	Payload     io.Reader
	Name        string
	ContentType string
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// WritePart adds the file as a part named field to the multipart writer and
// streams the payload into it. When ContentType is empty the part carries no
// Content-Type header and the receiver applies its own sniffing.
func (f File) WritePart(mw *multipart.Writer, field string) error {
	if f.Payload == nil {
		return &ClientError{Type: ErrorTypeEncode, Message: "file payload is nil"}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(f.Name)))
	if f.ContentType != "" {
		h.Set("Content-Type", f.ContentType)
	}

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f.Payload)
	return err
}

// MultipartBody encodes scalar fields and files into a multipart form body,
// returning the body writer output and the content type (including the
// boundary) for the request header. Non-string field values are JSON encoded.
// Files are written in sorted field-name order so bodies are deterministic.
func MultipartBody(w io.Writer, fields Fields, files map[string]File) (contentType string, err error) {
	mw := multipart.NewWriter(w)

	for _, field := range fields {
		var text string
		switch v := field.Value.(type) {
		case string:
			text = v
		case nil:
			text = ""
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			text = string(raw)
		}
		if err := mw.WriteField(field.Name, text); err != nil {
			return "", err
		}
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := files[name].WritePart(mw, name); err != nil {
			return "", err
		}
	}

	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}
