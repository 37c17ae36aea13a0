package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// anthropicVersion is the API version header required by the Messages API.
const anthropicVersion = "2023-06-01"

// AnthropicClient calls the Anthropic Messages API over HTTP.
type AnthropicClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Provider = (*AnthropicClient)(nil)

// NewAnthropicClient creates a Messages API client.
func NewAnthropicClient(baseURL, apiKey string) *AnthropicClient {
	return &AnthropicClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

// WithHTTPClient overrides the HTTP client, for tests.
func (c *AnthropicClient) WithHTTPClient(client *http.Client) *AnthropicClient {
	c.httpClient = client
	return c
}

// messagesRequest is the Messages API request body.
type messagesRequest struct {
	Model     string            `json:"model"`
	MaxTokens int               `json:"max_tokens"`
	System    string            `json:"system,omitempty"`
	Messages  []messagesMessage `json:"messages"`
}

type messagesMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// messagesResponse is the Messages API response body.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int64 `json:"input_tokens"`
		OutputTokens int64 `json:"output_tokens"`
	} `json:"usage"`
}

// Complete sends one message request and returns the concatenated text
// output. The context bounds the call; exceeding it maps to a timeout
// ProviderError.
func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, &ProviderError{Err: errors.New("missing api key")}
	}

	body := messagesRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		System:    req.System,
		Messages: []messagesMessage{
			{Role: "user", Content: req.Blocks},
		},
	}
	payload, errMarshal := json.Marshal(body)
	if errMarshal != nil {
		return nil, fmt.Errorf("ai: marshal request: %w", errMarshal)
	}

	httpReq, errReq := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if errReq != nil {
		return nil, fmt.Errorf("ai: build request: %w", errReq)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	httpResp, errDo := c.httpClient.Do(httpReq)
	if errDo != nil {
		if errors.Is(errDo, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &ProviderError{Timeout: true, Err: errDo}
		}
		return nil, &ProviderError{Err: errDo}
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Body is drained for connection reuse but not surfaced to callers.
		_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4096))
		return nil, &ProviderError{StatusCode: httpResp.StatusCode, Err: fmt.Errorf("status %d", httpResp.StatusCode)}
	}

	var resp messagesResponse
	if errDecode := json.NewDecoder(httpResp.Body).Decode(&resp); errDecode != nil {
		return nil, &ProviderError{Err: fmt.Errorf("decode response: %w", errDecode)}
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &Completion{
		Text:         text.String(),
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}, nil
}
