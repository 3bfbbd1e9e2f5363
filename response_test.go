package apikit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write([]byte(`{"id":1}`)); err != nil {
			t.Fatalf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	raw, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}

	resp, err := NewResponse(raw)
	if err != nil {
		t.Fatalf("NewResponse() returned error: %v", err)
	}

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"id":1}` {
		t.Errorf("Expected raw body captured, got %q", resp.Body)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Expected headers captured, got %v", resp.Header)
	}
	if resp.Parsed != nil {
		t.Error("Expected no parsed payload before decoding")
	}
}

func TestIsSuccess(t *testing.T) {
	cases := map[int]bool{199: false, 200: true, 204: true, 299: true, 301: false, 404: false}
	for code, want := range cases {
		resp := &Response{StatusCode: code}
		if resp.IsSuccess() != want {
			t.Errorf("IsSuccess() for %d: expected %v", code, want)
		}
	}
}

func TestParseJSON(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: []byte(`{"id":7,"name":"widget"}`)}

	item, err := ParseJSON[testItem](resp)
	if err != nil {
		t.Fatalf("ParseJSON() returned error: %v", err)
	}

	if item.ID != 7 || item.Name != "widget" {
		t.Errorf("Expected decoded item, got %+v", item)
	}
	if resp.Parsed != item {
		t.Error("Expected Parsed to record the decoded payload")
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	resp := &Response{StatusCode: 204}

	item, err := ParseJSON[testItem](resp)
	if err != nil {
		t.Fatalf("ParseJSON() on empty body returned error: %v", err)
	}
	if item.ID != 0 || item.Name != "" {
		t.Errorf("Expected zero value for empty body, got %+v", item)
	}
}

func TestParseJSONInvalidBody(t *testing.T) {
	resp := &Response{StatusCode: 200, Body: []byte(`{invalid`)}

	if _, err := ParseJSON[testItem](resp); err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if resp.Parsed != nil {
		t.Error("Expected Parsed to stay unset after a failed decode")
	}
}
