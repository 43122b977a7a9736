package fetcher

import (
	"compress/gzip"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"mcmodget/internal/config"
	"mcmodget/internal/identity"
)

func TestFetchSendsIdentityHeader(t *testing.T) {
	id := identity.Random()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(config.Default(), id, slog.Default())
	resp, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotUA != id.UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, id.UserAgent)
	}
	if string(resp.Body) != "<html></html>" {
		t.Errorf("unexpected body: %q", resp.Body)
	}
}

func TestFetchDecodesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte("compressed page"))
		_ = gz.Close()
	}))
	defer srv.Close()

	f := NewFetcher(config.Default(), identity.Random(), slog.Default())
	resp, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(resp.Body) != "compressed page" {
		t.Errorf("body = %q, want decoded content", resp.Body)
	}
}

func TestFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(config.Default(), identity.Random(), slog.Default())
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected an error for a 404 response")
	}
}
