package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https allowed", "https://example.com/page", false},
		{"http allowed", "http://example.com", false},
		{"missing scheme", "example.com/page", true},
		{"ftp scheme", "ftp://example.com/file.txt", true},
		{"pdf extension", "https://example.com/report.pdf", true},
		{"pdf extension uppercase", "https://example.com/REPORT.PDF", true},
		{"xlsx extension", "https://example.com/data.xlsx", true},
		{"doc extension", "http://example.com/a/b/notes.doc", true},
		{"zip extension", "https://example.com/archive.zip", true},
		{"rar extension", "https://example.com/archive.rar", true},
		{"pdf in query only", "https://example.com/page?file=.pdf", false},
		{"html page", "https://example.com/index.html", false},
		{"no extension", "https://example.com/reports", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error should match domain.ErrValidation, got %v", err)
			}
		})
	}
}

func TestFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := NewFetcher()

	body, err := f.Fetch(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("error should match domain.ErrNetwork, got %v", err)
	}
}

func TestFetcherFetchTransportFailure(t *testing.T) {
	f := NewFetcher()
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/unreachable")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("transport failure should be a NetworkError, got %v", err)
	}
}
