package apikit

import (
	"crypto/tls"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestWithHTTPHeadersAndCookies(t *testing.T) {
	client := New("https://api.example.com",
		WithHTTPHeaders(map[string]string{"X-Trace": "1"}),
		WithHTTPCookies(map[string]string{"session": "abc"}),
	)

	if client.headers["X-Trace"] != "1" {
		t.Errorf("Expected header option applied, got %v", client.headers)
	}
	if client.cookies["session"] != "abc" {
		t.Errorf("Expected cookie option applied, got %v", client.cookies)
	}
}

func TestWithRequestTimeout(t *testing.T) {
	client := New("https://api.example.com", WithRequestTimeout(5*time.Second))

	if client.timeout != 5*time.Second {
		t.Errorf("Expected timeout=5s, got %v", client.timeout)
	}
	if client.HTTPClient().Timeout != 5*time.Second {
		t.Errorf("Expected handle timeout=5s, got %v", client.HTTPClient().Timeout)
	}
}

func TestWithInsecureTLS(t *testing.T) {
	client := New("https://api.example.com", WithInsecureTLS())
	handle := client.HTTPClient()

	it, ok := handle.Transport.(*injectorTransport)
	if !ok {
		t.Fatal("Expected injector transport on constructed handle")
	}
	tr, ok := it.next.(*http.Transport)
	if !ok {
		t.Fatal("Expected *http.Transport base for TLS override")
	}
	if tr.TLSClientConfig == nil || !tr.TLSClientConfig.InsecureSkipVerify {
		t.Error("Expected InsecureSkipVerify enabled")
	}
}

func TestWithTLSConfig(t *testing.T) {
	cfg := &tls.Config{ServerName: "internal.example.com"}
	client := New("https://api.example.com", WithTLSConfig(cfg))
	handle := client.HTTPClient()

	it := handle.Transport.(*injectorTransport)
	tr, ok := it.next.(*http.Transport)
	if !ok {
		t.Fatal("Expected *http.Transport base for TLS override")
	}
	if tr.TLSClientConfig.ServerName != "internal.example.com" {
		t.Errorf("Expected custom TLS config applied, got %+v", tr.TLSClientConfig)
	}
	if tr.TLSClientConfig == cfg {
		t.Error("Expected TLS config cloned, not shared")
	}
}

func TestWithHTTPClientOptions(t *testing.T) {
	applied := false
	client := New("https://api.example.com", WithHTTPClientOptions(func(h *http.Client) {
		applied = true
		h.Timeout = time.Second
	}))

	handle := client.HTTPClient()
	if !applied {
		t.Error("Expected client option to run at handle construction")
	}
	if handle.Timeout != time.Second {
		t.Errorf("Expected option to win over configured timeout, got %v", handle.Timeout)
	}
}

func TestValidateNegativeTimeout(t *testing.T) {
	client := New("https://api.example.com", WithRequestTimeout(-time.Second))

	if client.IsValid() {
		t.Fatal("Expected invalid configuration for negative timeout")
	}
	if !strings.Contains(client.ValidationError().Error(), "timeout must be non-negative") {
		t.Errorf("Unexpected validation error: %v", client.ValidationError())
	}
}

func TestValidateExtremeTimeout(t *testing.T) {
	client := New("https://api.example.com", WithRequestTimeout(time.Hour))

	if client.IsValid() {
		t.Fatal("Expected invalid configuration for extreme timeout")
	}
}

func TestValidateNilEditor(t *testing.T) {
	client := New("https://api.example.com", WithRequestEditor(nil))

	if client.IsValid() {
		t.Fatal("Expected invalid configuration for nil editor")
	}
	if !strings.Contains(client.ValidationError().Error(), "requestEditor[0]") {
		t.Errorf("Unexpected validation error: %v", client.ValidationError())
	}
}

func TestValidateNilUnmarshaler(t *testing.T) {
	client := New("https://api.example.com", WithUnmarshaler(nil))

	if client.IsValid() {
		t.Fatal("Expected invalid configuration for nil unmarshaler")
	}
}

func TestValidateNilClientOption(t *testing.T) {
	client := New("https://api.example.com", WithHTTPClientOptions(nil))

	if client.IsValid() {
		t.Fatal("Expected invalid configuration for nil client option")
	}
}

func TestWithLoggerOption(t *testing.T) {
	logger := NewSimpleLogger()
	client := New("https://api.example.com", WithLogger(logger))

	if client.logger != logger {
		t.Error("Expected logger option applied")
	}
}
