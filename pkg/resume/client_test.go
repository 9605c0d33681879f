package resume

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParse_Disabled(t *testing.T) {
	c := New(Config{Enabled: false})

	_, err := c.Parse(context.Background(), "https://cdn.example.com/resume.pdf")
	if !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestParse_SendsResumeURLWithAuth(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"skills":["go","sql"]}`))
	}))
	defer srv.Close()

	c := New(Config{Enabled: true, Endpoint: srv.URL, APIKey: "test-key"})

	payload, err := c.Parse(context.Background(), "https://cdn.example.com/resume.pdf")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if gotPath != "/parse" {
		t.Errorf("expected /parse, got %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotBody["resume_url"] != "https://cdn.example.com/resume.pdf" {
		t.Errorf("unexpected request body: %v", gotBody)
	}
	if !json.Valid(payload) {
		t.Error("expected valid JSON payload")
	}
}

func TestParse_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Config{Enabled: true, Endpoint: srv.URL})

	_, err := c.Parse(context.Background(), "https://cdn.example.com/resume.pdf")
	if err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(Config{Enabled: true, Endpoint: srv.URL})

	_, err := c.Parse(context.Background(), "https://cdn.example.com/resume.pdf")
	if err == nil {
		t.Fatal("expected error on invalid JSON body")
	}
}

func TestParse_EmptyURL(t *testing.T) {
	c := New(Config{Enabled: true, Endpoint: "http://localhost:9"})

	_, err := c.Parse(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty resume url")
	}
}
