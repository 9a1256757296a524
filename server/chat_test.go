package server

import (
	"context"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/flowboard/internal/ai"
)

// stubCompleter records the forwarded request and returns a canned response.
type stubCompleter struct {
	got  ai.ChatRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (s *stubCompleter) Chat(ctx context.Context, req ai.ChatRequest) (openai.ChatCompletionResponse, error) {
	s.got = req
	return s.resp, s.err
}

func TestChat_ForwardsToProvider(t *testing.T) {
	stub := &stubCompleter{
		resp: openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "hi there"}},
			},
		},
	}
	s, _ := newTestServer(t, stub)

	rec := doJSON(t, s, http.MethodPost, "/api/ai/chat", map[string]any{
		"model": "gpt-4o-mini",
		"messages": []map[string]string{
			{"role": "user", "content": "hello"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, stub.got.Messages, 1)
	assert.Equal(t, "user", stub.got.Messages[0].Role)
	assert.Equal(t, "hello", stub.got.Messages[0].Content)

	var resp openai.ChatCompletionResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "chatcmpl-1", resp.ID)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "hi there", resp.Choices[0].Message.Content)
}

func TestChat_MissingMessages(t *testing.T) {
	s, _ := newTestServer(t, &stubCompleter{})

	rec := doJSON(t, s, http.MethodPost, "/api/ai/chat", map[string]any{"model": "gpt-4o-mini"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeValidation, body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "messages", body.Details[0].Field)
}

func TestChat_EmptyMessages(t *testing.T) {
	s, _ := newTestServer(t, &stubCompleter{})

	rec := doJSON(t, s, http.MethodPost, "/api/ai/chat", map[string]any{
		"messages": []any{},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeValidation, body.Code)
}

func TestChat_ProviderError(t *testing.T) {
	stub := &stubCompleter{err: &openai.APIError{HTTPStatusCode: 429, Message: "rate limited"}}
	s, _ := newTestServer(t, stub)

	rec := doJSON(t, s, http.MethodPost, "/api/ai/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "hello"}},
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeProvider, body.Code)
	assert.NotContains(t, body.Error, "rate limited", "upstream detail must not leak")
}

func TestChat_UnexpectedError(t *testing.T) {
	stub := &stubCompleter{err: context.DeadlineExceeded}
	s, _ := newTestServer(t, stub)

	rec := doJSON(t, s, http.MethodPost, "/api/ai/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "hello"}},
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, codeInternal, body.Code)
}

func TestChat_ForwardsTools(t *testing.T) {
	stub := &stubCompleter{}
	s, _ := newTestServer(t, stub)

	rec := doJSON(t, s, http.MethodPost, "/api/ai/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "hello"}},
		"tools": []map[string]any{
			{"type": "function", "function": map[string]any{"name": "lookup"}},
		},
		"tool_choice": "auto",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.got.Tools, 1)
	assert.Equal(t, "lookup", stub.got.Tools[0].Function.Name)
	assert.Equal(t, "auto", stub.got.ToolChoice)
}
