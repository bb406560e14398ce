package scrape

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMIMETypeFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/a.png", "image/png"},
		{"https://example.com/a.PNG", "image/png"},
		{"https://example.com/a.gif", "image/gif"},
		{"https://example.com/a.jpg", "image/jpeg"},
		{"https://example.com/a.jpeg", "image/jpeg"},
		{"https://example.com/a.webp", "image/jpeg"}, // unrecognized defaults to jpeg
		{"https://example.com/no-extension", "image/jpeg"},
	}

	for _, tt := range tests {
		if got := mimeTypeFromURL(tt.url); got != tt.want {
			t.Errorf("mimeTypeFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestEmbedAllInline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/broken") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("img-bytes:" + r.URL.Path))
	}))
	defer srv.Close()

	e := NewEmbedder(NewFetcher(), true, discardLogger())

	refs := []ImageRef{
		{URL: srv.URL + "/one.png", Alt: "Image 1"},
		{URL: srv.URL + "/broken.png", Alt: "Image 2"},
		{URL: srv.URL + "/three.gif", Alt: "Image 3"},
	}

	nodes, warnings := e.EmbedAll(context.Background(), refs)

	if len(nodes) != 2 {
		t.Fatalf("node count = %d, want 2 (broken image dropped)", len(nodes))
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "/broken.png") {
		t.Errorf("warnings = %v, want one naming the broken image", warnings)
	}

	// Document order restored after the fan-out.
	if nodes[0].Alt != "Image 1" || nodes[1].Alt != "Image 3" {
		t.Errorf("order not preserved: %q, %q", nodes[0].Alt, nodes[1].Alt)
	}

	blob, ok := nodes[0].Payload.(*models.InlineBlob)
	if !ok {
		t.Fatalf("payload = %T, want *models.InlineBlob", nodes[0].Payload)
	}
	if blob.MIMEType != "image/png" {
		t.Errorf("mime = %q, want image/png", blob.MIMEType)
	}
	if string(blob.Data) != "img-bytes:/one.png" {
		t.Errorf("data = %q", blob.Data)
	}

	wantSrc := "data:image/png;base64," + base64.StdEncoding.EncodeToString(blob.Data)
	if blob.Src() != wantSrc {
		t.Errorf("Src() = %q, want %q", blob.Src(), wantSrc)
	}
}

func TestEmbedAllReferenceMode(t *testing.T) {
	e := NewEmbedder(NewFetcher(), false, discardLogger())

	refs := []ImageRef{{URL: "https://example.com/pic.png", Alt: "Pic"}}
	nodes, warnings := e.EmbedAll(context.Background(), refs)

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(nodes) != 1 {
		t.Fatalf("node count = %d", len(nodes))
	}
	ref, ok := nodes[0].Payload.(*models.Reference)
	if !ok {
		t.Fatalf("payload = %T, want *models.Reference", nodes[0].Payload)
	}
	if ref.URL != "https://example.com/pic.png" {
		t.Errorf("url = %q", ref.URL)
	}
}

func TestEmbedAllEmpty(t *testing.T) {
	e := NewEmbedder(NewFetcher(), true, discardLogger())
	nodes, warnings := e.EmbedAll(context.Background(), nil)
	if len(nodes) != 0 || len(warnings) != 0 {
		t.Errorf("expected empty result, got %d nodes %d warnings", len(nodes), len(warnings))
	}
}
