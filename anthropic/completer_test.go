package anthropic_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/sourceeval"
	"github.com/fwojciec/sourceeval/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const messageResponse = `{
	"id": "msg_01",
	"type": "message",
	"role": "assistant",
	"model": "claude-sonnet-4-5",
	"content": [
		{"type": "text", "text": "{\"notizie\": "},
		{"type": "text", "text": "[]}"}
	],
	"stop_reason": "end_turn",
	"usage": {"input_tokens": 10, "output_tokens": 5}
}`

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(messageResponse))
	}))
	t.Cleanup(srv.Close)

	c, err := anthropic.NewCompleter("secret", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	got, err := c.Complete(context.Background(), sourceeval.CompletionRequest{
		Model:       "claude-haiku-4-5",
		System:      "Extract news.",
		Prompt:      "page",
		Temperature: 0.5,
		JSON:        true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"notizie": []}`, got)
	assert.Equal(t, "claude-haiku-4-5", body["model"])
	assert.InDelta(t, 0.5, body["temperature"], 0.001)
	system, ok := body["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	block, ok := system[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Extract news.\n\nRespond with a single JSON document and nothing else.", block["text"])
}

func TestCompleter_Complete_PropagatesAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad model"}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := anthropic.NewCompleter("secret", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), sourceeval.CompletionRequest{Prompt: "page"})

	require.Error(t, err)
}

func TestCompleter_Complete_ReturnsErrorWhenPromptEmpty(t *testing.T) {
	t.Parallel()

	c, err := anthropic.NewCompleter("secret")
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), sourceeval.CompletionRequest{})

	require.Error(t, err)
	assert.Equal(t, sourceeval.EINVALID, sourceeval.ErrorCode(err))
}

func TestNewCompleter_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := anthropic.NewCompleter("")

	require.Error(t, err)
	assert.Equal(t, sourceeval.ECONFIG, sourceeval.ErrorCode(err))
}

func TestBuildParams(t *testing.T) {
	t.Parallel()

	t.Run("defaults model", func(t *testing.T) {
		t.Parallel()

		params := anthropic.BuildParams(sourceeval.CompletionRequest{Prompt: "p"}, 100)

		assert.Equal(t, anthropic.DefaultModel, string(params.Model))
		assert.Equal(t, int64(100), params.MaxTokens)
		assert.Empty(t, params.System)
		require.Len(t, params.Messages, 1)
	})

	t.Run("plain system prompt", func(t *testing.T) {
		t.Parallel()

		params := anthropic.BuildParams(sourceeval.CompletionRequest{System: "Be brief.", Prompt: "p"}, 100)

		require.Len(t, params.System, 1)
		assert.Equal(t, "Be brief.", params.System[0].Text)
	})

	t.Run("JSON without system prompt", func(t *testing.T) {
		t.Parallel()

		params := anthropic.BuildParams(sourceeval.CompletionRequest{Prompt: "p", JSON: true}, 100)

		require.Len(t, params.System, 1)
		assert.Equal(t, "Respond with a single JSON document and nothing else.", params.System[0].Text)
	})
}
