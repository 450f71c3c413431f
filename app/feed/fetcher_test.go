package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcherFetch(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "RSS PDF/test")
	data, err := fetcher.Fetch(context.Background(), server.URL, time.Second)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if string(data) != "payload" {
		t.Errorf("Expected body 'payload', got '%s'", string(data))
	}
	if gotAgent != "RSS PDF/test" {
		t.Errorf("Expected user agent 'RSS PDF/test', got '%s'", gotAgent)
	}
}

func TestFetcherFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "")
	if _, err := fetcher.Fetch(context.Background(), server.URL, time.Second); err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestFetcherFetchHTMLRejectsOtherTypes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.3"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "")
	if _, err := fetcher.FetchHTML(context.Background(), server.URL, time.Second); err == nil {
		t.Error("Expected error for non-HTML content type")
	}
}

func TestFetcherFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "")
	if _, err := fetcher.Fetch(context.Background(), server.URL, 50*time.Millisecond); err == nil {
		t.Error("Expected timeout error")
	}
}
