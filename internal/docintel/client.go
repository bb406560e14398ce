// Package docintel integrates the hosted document-intelligence service used
// by the enterprise PDF conversion pipeline.
package docintel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
)

const (
	// apiVersion is the layout-analysis API version this client targets.
	apiVersion = "2023-07-31"
	// modelID is the prebuilt layout model: paragraphs plus table structure.
	modelID = "prebuilt-layout"

	defaultTimeout      = 60 * time.Second
	defaultPollInterval = 2 * time.Second
	maxPollAttempts     = 60
)

// Client calls the Azure Document Intelligence REST API. The analyze call
// is asynchronous: submit returns an operation URL which is polled until
// the analysis succeeds or fails.
type Client struct {
	endpoint     string
	key          string
	httpClient   *http.Client
	pollInterval time.Duration
}

// NewClient creates a document-intelligence client for the given resource
// endpoint (e.g. https://myresource.cognitiveservices.azure.com).
func NewClient(endpoint, key string) *Client {
	return &Client{
		endpoint:     endpoint,
		key:          key,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		pollInterval: defaultPollInterval,
	}
}

// NewClientWithConfig creates a client with a custom poll interval, used by
// tests.
func NewClientWithConfig(endpoint, key string, pollInterval time.Duration) *Client {
	c := NewClient(endpoint, key)
	c.pollInterval = pollInterval
	return c
}

// analyzeResponse is the poll result envelope.
type analyzeResponse struct {
	Status        string         `json:"status"`
	AnalyzeResult *analyzeResult `json:"analyzeResult,omitempty"`
	Error         *apiError      `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type analyzeResult struct {
	Content    string      `json:"content"`
	Paragraphs []paragraph `json:"paragraphs"`
	Tables     []table     `json:"tables"`
}

type paragraph struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
}

type table struct {
	RowCount    int    `json:"rowCount"`
	ColumnCount int    `json:"columnCount"`
	Cells       []cell `json:"cells"`
}

type cell struct {
	Kind        string `json:"kind,omitempty"` // "columnHeader" for header cells
	RowIndex    int    `json:"rowIndex"`
	ColumnIndex int    `json:"columnIndex"`
	Content     string `json:"content"`
}

// Analyze submits document bytes to the layout model and returns the
// recognized paragraphs and tables as content nodes in reading order.
func (c *Client) Analyze(ctx context.Context, data []byte, contentType string) (*models.ExtractionResult, error) {
	opURL, err := c.submit(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	result, err := c.poll(ctx, opURL)
	if err != nil {
		return nil, err
	}

	return toNodes(result), nil
}

// submit starts the analysis and returns the operation URL to poll.
func (c *Client) submit(ctx context.Context, data []byte, contentType string) (string, error) {
	endpoint := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		c.endpoint, modelID, apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create analyze request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("analyze request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("analyze API error (status %d): %s", resp.StatusCode, string(body))
	}

	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return "", fmt.Errorf("analyze response missing Operation-Location header")
	}
	return opURL, nil
}

// poll waits for the analysis operation to finish.
func (c *Client) poll(ctx context.Context, opURL string) (*analyzeResult, error) {
	for attempt := 0; attempt < maxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, opURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create poll request: %w", err)
		}
		req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("poll request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read poll response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("poll API error (status %d): %s", resp.StatusCode, string(body))
		}

		var analyzed analyzeResponse
		if err := json.Unmarshal(body, &analyzed); err != nil {
			return nil, fmt.Errorf("failed to parse poll response: %w", err)
		}

		switch analyzed.Status {
		case "succeeded":
			if analyzed.AnalyzeResult == nil {
				return nil, fmt.Errorf("analysis succeeded but returned no result")
			}
			return analyzed.AnalyzeResult, nil
		case "failed":
			if analyzed.Error != nil {
				return nil, fmt.Errorf("analysis failed: %s: %s", analyzed.Error.Code, analyzed.Error.Message)
			}
			return nil, fmt.Errorf("analysis failed")
		}
		// "notStarted" / "running": keep polling.
	}
	return nil, fmt.Errorf("analysis did not finish after %d polls", maxPollAttempts)
}

// toNodes maps the service's paragraphs and tables onto content nodes.
// Column-header cells in the first row become the table header; otherwise
// tables fall back to header-by-position downstream behavior by leaving
// the first row in place.
func toNodes(result *analyzeResult) *models.ExtractionResult {
	out := &models.ExtractionResult{}

	for _, p := range result.Paragraphs {
		if p.Content == "" {
			continue
		}
		out.Nodes = append(out.Nodes, &models.TextNode{Text: p.Content})
	}

	for _, t := range result.Tables {
		out.Nodes = append(out.Nodes, toTableNode(t))
	}

	return out
}

func toTableNode(t table) *models.TableNode {
	grid := make([][]string, t.RowCount)
	for i := range grid {
		grid[i] = make([]string, t.ColumnCount)
	}
	headerRows := map[int]bool{}
	for _, c := range t.Cells {
		if c.RowIndex < 0 || c.RowIndex >= t.RowCount || c.ColumnIndex < 0 || c.ColumnIndex >= t.ColumnCount {
			continue
		}
		grid[c.RowIndex][c.ColumnIndex] = c.Content
		if c.Kind == "columnHeader" {
			headerRows[c.RowIndex] = true
		}
	}

	node := &models.TableNode{}
	for i, row := range grid {
		if i == 0 && headerRows[0] {
			node.Headers = row
			continue
		}
		node.Rows = append(node.Rows, row)
	}
	return node
}
