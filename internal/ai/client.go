// Package ai adapts the external chat-completion provider.
package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// Defaults applied when the request leaves them unset.
const (
	DefaultModel      = "gpt-4o-mini"
	DefaultToolChoice = "auto"
)

// ChatRequest is the inbound chat payload. Messages and tools use the
// provider's own wire types, so the payload is forwarded verbatim.
type ChatRequest struct {
	Model      string                         `json:"model"`
	Messages   []openai.ChatCompletionMessage `json:"messages" validate:"required,min=1"`
	Tools      []openai.Tool                  `json:"tools"`
	ToolChoice string                         `json:"tool_choice"`
}

// Completer performs a single blocking chat-completion call.
type Completer interface {
	Chat(ctx context.Context, req ChatRequest) (openai.ChatCompletionResponse, error)
}

// Client is a Completer backed by the OpenAI chat-completions API.
type Client struct {
	api *openai.Client
}

// NewClient creates a provider client. baseURL overrides the API endpoint
// for OpenAI-compatible providers; empty means api.openai.com.
func NewClient(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// Chat forwards the request to the provider. No retry, no streaming.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (openai.ChatCompletionResponse, error) {
	return c.api.CreateChatCompletion(ctx, buildRequest(req))
}

// buildRequest applies defaults and converts to the provider request. The
// tool-choice policy is attached only alongside tool definitions; the API
// rejects a tool choice without tools.
func buildRequest(req ChatRequest) openai.ChatCompletionRequest {
	out := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: req.Messages,
	}
	if out.Model == "" {
		out.Model = DefaultModel
	}
	if len(req.Tools) > 0 {
		out.Tools = req.Tools
		if req.ToolChoice != "" {
			out.ToolChoice = req.ToolChoice
		} else {
			out.ToolChoice = DefaultToolChoice
		}
	}
	return out
}

// IsProviderError reports whether err came back from the provider's API
// rather than from transport or this process.
func IsProviderError(err error) bool {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	return errors.As(err, &apiErr) || errors.As(err, &reqErr)
}
