package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Client abstracts vision-capable LLM providers for document extraction.
type Client interface {
	ExtractDocument(ctx context.Context, input ExtractInput) (json.RawMessage, error)
}

// ExtractInput captures one uploaded document to extract fields from.
type ExtractInput struct {
	FileName    string
	ContentType string
	Data        []byte
	// TextHint carries machine-extracted text for PDFs with a text layer.
	// Empty for images and scanned documents.
	TextHint string
	// Today anchors the status decision: the model compares document dates
	// against this day.
	Today time.Time
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// MalformedOutputError reports model output that is not a single JSON object.
// Raw carries the content verbatim for diagnostics.
type MalformedOutputError struct {
	Raw json.RawMessage
}

func (e *MalformedOutputError) Error() string {
	return "model output is not a JSON object"
}

// IsJSONObject reports whether raw parses as a single JSON object.
func IsJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// ExtractDocument returns ErrNotImplemented.
func (PlaceholderClient) ExtractDocument(ctx context.Context, input ExtractInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
