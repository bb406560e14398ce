package docintel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

func TestAnalyzeSucceeds(t *testing.T) {
	polls := 0
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			if !strings.Contains(r.URL.Path, "documentModels/prebuilt-layout:analyze") {
				t.Errorf("unexpected path %q", r.URL.Path)
			}
			if got := r.URL.Query().Get("api-version"); got != "2023-07-31" {
				t.Errorf("api-version = %q", got)
			}
			if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "test-key" {
				t.Errorf("subscription key = %q", got)
			}
			if got := r.Header.Get("Content-Type"); got != "application/pdf" {
				t.Errorf("content type = %q", got)
			}
			w.Header().Set("Operation-Location", srv.URL+"/operations/123")
			w.WriteHeader(http.StatusAccepted)
		case r.Method == http.MethodGet:
			polls++
			w.Header().Set("Content-Type", "application/json")
			if polls == 1 {
				_ = json.NewEncoder(w).Encode(map[string]any{"status": "running"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "succeeded",
				"analyzeResult": map[string]any{
					"paragraphs": []map[string]any{
						{"content": "First paragraph"},
						{"content": ""},
						{"content": "Second paragraph"},
					},
					"tables": []map[string]any{
						{
							"rowCount":    2,
							"columnCount": 2,
							"cells": []map[string]any{
								{"kind": "columnHeader", "rowIndex": 0, "columnIndex": 0, "content": "Name"},
								{"kind": "columnHeader", "rowIndex": 0, "columnIndex": 1, "content": "Value"},
								{"rowIndex": 1, "columnIndex": 0, "content": "a"},
								{"rowIndex": 1, "columnIndex": 1, "content": "1"},
							},
						},
					},
				},
			})
		}
	}))
	defer srv.Close()

	client := NewClientWithConfig(srv.URL, "test-key", time.Millisecond)
	result, err := client.Analyze(context.Background(), []byte("%PDF-1.4"), "application/pdf")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if polls < 2 {
		t.Errorf("expected at least 2 polls, got %d", polls)
	}

	texts := result.Texts()
	if len(texts) != 2 {
		t.Fatalf("expected 2 text nodes, got %d", len(texts))
	}
	if texts[0].Text != "First paragraph" || texts[1].Text != "Second paragraph" {
		t.Errorf("unexpected text nodes: %q, %q", texts[0].Text, texts[1].Text)
	}

	tables := result.Tables()
	if len(tables) != 1 {
		t.Fatalf("expected 1 table node, got %d", len(tables))
	}
	wantHeaders := []string{"Name", "Value"}
	if len(tables[0].Headers) != 2 || tables[0].Headers[0] != wantHeaders[0] || tables[0].Headers[1] != wantHeaders[1] {
		t.Errorf("headers = %v, want %v", tables[0].Headers, wantHeaders)
	}
	if len(tables[0].Rows) != 1 || tables[0].Rows[0][0] != "a" || tables[0].Rows[0][1] != "1" {
		t.Errorf("rows = %v", tables[0].Rows)
	}
}

func TestAnalyzeFailedOperation(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Operation-Location", srv.URL+"/operations/456")
			w.WriteHeader(http.StatusAccepted)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "failed",
			"error":  map[string]any{"code": "InvalidContent", "message": "unreadable document"},
		})
	}))
	defer srv.Close()

	client := NewClientWithConfig(srv.URL, "test-key", time.Millisecond)
	_, err := client.Analyze(context.Background(), []byte("junk"), "application/pdf")
	if err == nil {
		t.Fatal("expected error for failed operation")
	}
	if !strings.Contains(err.Error(), "InvalidContent") {
		t.Errorf("error = %v, want code in message", err)
	}
}

func TestAnalyzeSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"401"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClientWithConfig(srv.URL, "bad-key", time.Millisecond)
	_, err := client.Analyze(context.Background(), []byte("%PDF-1.4"), "application/pdf")
	if err == nil {
		t.Fatal("expected error for rejected submit")
	}
}

func TestTableWithoutHeaderRow(t *testing.T) {
	node := toTableNode(table{
		RowCount:    2,
		ColumnCount: 2,
		Cells: []cell{
			{RowIndex: 0, ColumnIndex: 0, Content: "x"},
			{RowIndex: 0, ColumnIndex: 1, Content: "y"},
			{RowIndex: 1, ColumnIndex: 0, Content: "1"},
			{RowIndex: 1, ColumnIndex: 1, Content: "2"},
		},
	})
	if len(node.Headers) != 0 {
		t.Errorf("expected no headers, got %v", node.Headers)
	}
	if len(node.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(node.Rows))
	}
	var _ models.Node = node
}
