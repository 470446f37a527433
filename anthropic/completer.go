// Package anthropic implements sourceeval.Completer using the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/sourceeval"
)

// DefaultModel is used when a request names no model.
const DefaultModel = "claude-sonnet-4-5"

// DefaultMaxTokens bounds the length of an answer.
const DefaultMaxTokens = 4096

// jsonInstruction is appended to the system prompt of JSON requests; the
// Messages API has no response MIME type setting.
const jsonInstruction = "Respond with a single JSON document and nothing else."

// Ensure Completer implements sourceeval.Completer at compile time.
var _ sourceeval.Completer = (*Completer)(nil)

// Completer implements sourceeval.Completer using Anthropic models.
type Completer struct {
	client    anthropic.Client
	maxTokens int64
}

// NewCompleter creates a Completer authenticated with apiKey. Extra request
// options are passed to the SDK client.
func NewCompleter(apiKey string, opts ...option.RequestOption) (*Completer, error) {
	if apiKey == "" {
		return nil, sourceeval.Errorf(sourceeval.ECONFIG, "anthropic API key required")
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Completer{
		client:    anthropic.NewClient(opts...),
		maxTokens: DefaultMaxTokens,
	}, nil
}

// Complete sends a single prompt and returns the concatenated text blocks of
// the answer.
func (c *Completer) Complete(ctx context.Context, req sourceeval.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", sourceeval.Errorf(sourceeval.EINVALID, "prompt required")
	}

	msg, err := c.client.Messages.New(ctx, BuildParams(req, c.maxTokens))
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", sourceeval.Errorf(sourceeval.EINTERNAL, "anthropic returned nil message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// BuildParams returns the Messages API parameters for a request.
func BuildParams(req sourceeval.CompletionRequest, maxTokens int64) anthropic.MessageNewParams {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(float64(req.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	system := req.System
	if req.JSON {
		system = strings.TrimSpace(system + "\n\n" + jsonInstruction)
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	return params
}
