// Package gemini implements sourceeval.Completer using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/sourceeval"
	"google.golang.org/genai"
)

// DefaultModel is used when a request names no model.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements sourceeval.Completer at compile time.
var _ sourceeval.Completer = (*Completer)(nil)

// Completer implements sourceeval.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client}
}

// NewClient creates a Gemini API client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, sourceeval.Errorf(sourceeval.ECONFIG, "gemini API key required")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// Complete sends a single prompt and returns the model's text answer.
func (c *Completer) Complete(ctx context.Context, req sourceeval.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", sourceeval.Errorf(sourceeval.EINVALID, "prompt required")
	}

	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: req.Prompt}},
		}},
		BuildConfig(req),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", sourceeval.Errorf(sourceeval.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a request.
func BuildConfig(req sourceeval.CompletionRequest) *genai.GenerateContentConfig {
	temp := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.JSON {
		config.ResponseMIMEType = "application/json"
	}
	return config
}
