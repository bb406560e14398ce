package models

import (
	"encoding/base64"
	"fmt"
)

// NodeKind identifies the kind of content node.
type NodeKind string

const (
	NodeKindText  NodeKind = "text"
	NodeKindTable NodeKind = "table"
	NodeKindImage NodeKind = "image"
)

// Node is one unit of extracted structure (text run, table, or image),
// ordered as encountered in the source document. That order is never
// re-sorted.
type Node interface {
	Kind() NodeKind
}

// TextNode is a cleaned, whitespace-normalized text segment.
type TextNode struct {
	Text string
}

func (n *TextNode) Kind() NodeKind { return NodeKindText }

// TableNode holds a table as extracted: a header row (possibly empty) and
// the data rows. Rows may be ragged until normalized for rendering.
type TableNode struct {
	Headers []string
	Rows    [][]string
}

func (n *TableNode) Kind() NodeKind { return NodeKindTable }

// ImageNode holds an image with its alt text and payload. Alt text defaults
// to "Image {n}" (1-indexed within the document) when the source carries
// no alt attribute.
type ImageNode struct {
	Alt     string
	Payload ImagePayload
}

func (n *ImageNode) Kind() NodeKind { return NodeKindImage }

// ImagePayload is either an inline-embedded blob or an external reference.
type ImagePayload interface {
	// Src returns the string usable as a Markdown image destination.
	Src() string
}

// InlineBlob is binary image data embedded directly into the output as a
// base64 data URI.
type InlineBlob struct {
	MIMEType string
	Data     []byte
}

func (b *InlineBlob) Src() string {
	return fmt.Sprintf("data:%s;base64,%s", b.MIMEType, base64.StdEncoding.EncodeToString(b.Data))
}

// Reference points at an externally stored image.
type Reference struct {
	URL string
}

func (r *Reference) Src() string { return r.URL }

// ExtractionResult owns the full ordered node sequence for one source
// document. It is scoped to a single extraction call and discarded after
// rendering. Warnings record non-fatal omissions (dropped images, degraded
// sink) so callers can distinguish full from partial success.
type ExtractionResult struct {
	Nodes    []Node
	Warnings []string
}

// AddWarning appends a non-fatal warning to the result.
func (r *ExtractionResult) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Texts returns the text nodes in document order.
func (r *ExtractionResult) Texts() []*TextNode {
	var out []*TextNode
	for _, n := range r.Nodes {
		if t, ok := n.(*TextNode); ok {
			out = append(out, t)
		}
	}
	return out
}

// Tables returns the table nodes in document order.
func (r *ExtractionResult) Tables() []*TableNode {
	var out []*TableNode
	for _, n := range r.Nodes {
		if t, ok := n.(*TableNode); ok {
			out = append(out, t)
		}
	}
	return out
}

// Images returns the image nodes in document order.
func (r *ExtractionResult) Images() []*ImageNode {
	var out []*ImageNode
	for _, n := range r.Nodes {
		if i, ok := n.(*ImageNode); ok {
			out = append(out, i)
		}
	}
	return out
}
