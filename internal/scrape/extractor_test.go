package scrape

import (
	"reflect"
	"testing"
)

func TestExtractTables(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		wantHeaders []string
		wantRows    [][]string
	}{
		{
			name:        "explicit headers with short row",
			html:        `<table><tr><th>A</th><th>B</th></tr><tr><td>1</td></tr></table>`,
			wantHeaders: []string{"A", "B"},
			wantRows:    [][]string{{"1"}},
		},
		{
			name:        "header by position",
			html:        `<table><tr><td>Name</td><td>Age</td></tr><tr><td>Ada</td><td>36</td></tr></table>`,
			wantHeaders: []string{"Name", "Age"},
			wantRows:    [][]string{{"Ada", "36"}},
		},
		{
			name:        "empty rows discarded",
			html:        `<table><tr><th>A</th></tr><tr></tr><tr><td>1</td></tr></table>`,
			wantHeaders: []string{"A"},
			wantRows:    [][]string{{"1"}},
		},
		{
			name:        "cells trimmed",
			html:        "<table><tr><th> A </th></tr><tr><td>\n 1 \n</td></tr></table>",
			wantHeaders: []string{"A"},
			wantRows:    [][]string{{"1"}},
		},
		{
			name:        "th scattered across rows all become headers",
			html:        `<table><tr><th>A</th><td>x</td></tr><tr><th>B</th><td>y</td></tr></table>`,
			wantHeaders: []string{"A", "B"},
			wantRows:    [][]string{{"A", "x"}, {"B", "y"}},
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract([]byte(tt.html), "https://example.com")
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if len(got.Tables) != 1 {
				t.Fatalf("table count = %d, want 1", len(got.Tables))
			}
			table := got.Tables[0]
			if !reflect.DeepEqual(table.Headers, tt.wantHeaders) {
				t.Errorf("headers = %v, want %v", table.Headers, tt.wantHeaders)
			}
			if !reflect.DeepEqual(table.Rows, tt.wantRows) {
				t.Errorf("rows = %v, want %v", table.Rows, tt.wantRows)
			}
		})
	}
}

func TestExtractImages(t *testing.T) {
	html := `
		<html><body>
		<img src="/logo.png" alt="Logo">
		<img alt="no source at all">
		<img src="https://cdn.example.com/banner.gif">
		<img src="relative/pic.jpg" alt="">
		</body></html>`

	e := NewExtractor()
	got, err := e.Extract([]byte(html), "https://example.com/articles/post")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []ImageRef{
		{URL: "https://example.com/logo.png", Alt: "Logo"},
		{URL: "https://cdn.example.com/banner.gif", Alt: "Image 3"},
		{URL: "https://example.com/articles/relative/pic.jpg", Alt: ""},
	}
	if !reflect.DeepEqual(got.Images, want) {
		t.Errorf("images = %v, want %v", got.Images, want)
	}
}

func TestExtractImageDefaultAltIsPositional(t *testing.T) {
	// The 2nd image on the page with no alt attribute defaults to "Image 2".
	html := `<img src="/a.png" alt="A"><img src="/b.png">`

	e := NewExtractor()
	got, err := e.Extract([]byte(html), "https://example.com")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(got.Images) != 2 {
		t.Fatalf("image count = %d, want 2", len(got.Images))
	}
	if got.Images[1].Alt != "Image 2" {
		t.Errorf("alt = %q, want %q", got.Images[1].Alt, "Image 2")
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "script and style removed",
			html: `<html><head><style>body{}</style></head><body><script>var x=1;</script><p>visible</p></body></html>`,
			want: "visible",
		},
		{
			name: "double space splits into separate lines",
			html: `<p>first  second</p>`,
			want: "first\nsecond",
		},
		{
			name: "blank lines dropped",
			html: "<p>a</p>\n\n\n<p>b</p>",
			want: "a\nb",
		},
		{
			name: "lines stripped",
			html: "<p>   padded   </p>",
			want: "padded",
		},
	}

	e := NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract([]byte(tt.html), "https://example.com")
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got.Text != tt.want {
				t.Errorf("text = %q, want %q", got.Text, tt.want)
			}
		})
	}
}

func TestExtractMalformedHTMLYieldsEmptyCollections(t *testing.T) {
	e := NewExtractor()
	got, err := e.Extract([]byte("<<<not really html"), "https://example.com")
	if err != nil {
		t.Fatalf("malformed HTML must not error: %v", err)
	}
	if len(got.Tables) != 0 || len(got.Images) != 0 {
		t.Errorf("expected empty collections, got %d tables %d images", len(got.Tables), len(got.Images))
	}
}
