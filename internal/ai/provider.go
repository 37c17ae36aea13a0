package ai

import (
	"context"
	"encoding/base64"
)

// ContentBlock is one piece of user content sent to the provider.
type ContentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *BlockSource `json:"source,omitempty"`
}

// BlockSource carries base64-encoded binary content with its media type.
type BlockSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// TextBlock builds a plain text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: "text", Text: text}
}

// ImageBlock builds a base64 image content block.
func ImageBlock(mediaType string, data []byte) ContentBlock {
	return ContentBlock{
		Type: "image",
		Source: &BlockSource{
			Type:      "base64",
			MediaType: mediaType,
			Data:      base64.StdEncoding.EncodeToString(data),
		},
	}
}

// DocumentBlock builds a base64 PDF document content block.
func DocumentBlock(data []byte) ContentBlock {
	return ContentBlock{
		Type: "document",
		Source: &BlockSource{
			Type:      "base64",
			MediaType: MimePDF,
			Data:      base64.StdEncoding.EncodeToString(data),
		},
	}
}

// CompletionRequest describes one generation call.
type CompletionRequest struct {
	Model     string
	System    string
	Blocks    []ContentBlock
	MaxTokens int
}

// Completion is the provider's text output with token accounting.
type Completion struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
}

// Provider dispatches a single completion request to an external model.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
