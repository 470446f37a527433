package sourceeval

import (
	"context"
	"fmt"
)

// ProbeKind identifies a scraping probe. Kinds differ only by the extraction
// prompt sent to the scraping engine.
type ProbeKind string

// Supported probe kinds.
const (
	// ProbeCapability checks whether the engine can extract anything at all.
	ProbeCapability ProbeKind = "capability"
	// ProbeCategory extracts news items with a single-level category.
	ProbeCategory ProbeKind = "category"
	// ProbeSecondaryCategory extracts news items with a two-level category.
	ProbeSecondaryCategory ProbeKind = "secondary_category"
)

// ProbeKinds lists every probe kind in evaluation order.
var ProbeKinds = []ProbeKind{ProbeCapability, ProbeCategory, ProbeSecondaryCategory}

// DefaultPrompts are the extraction prompts used for each probe kind. The
// curated source lists are Italian, so are the prompts.
var DefaultPrompts = map[ProbeKind]string{
	ProbeCapability:        "Estrai i titoli delle notizie e la lingua della notizia",
	ProbeCategory:          "Estrai i titoli delle notizie, la lingua, e la categoria in base al titolo della notizia",
	ProbeSecondaryCategory: "Estrai i titoli delle notizie, la lingua, la categoria della notizia in base al titolo e una categoria secondaria",
}

// Provider identifies the LLM backend behind the scraping engine.
type Provider string

// Supported providers.
const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// ProbeConfig is the configuration bound to the scraping engine for a run.
// Build it with NewProbeConfig. It holds no references, so copies never
// share state.
type ProbeConfig struct {
	Provider    Provider
	Model       string
	APIKey      string
	Temperature float32
	Headless    bool

	capabilityPrompt        string
	categoryPrompt          string
	secondaryCategoryPrompt string
}

// ProbeOption configures a ProbeConfig.
type ProbeOption func(*ProbeConfig)

// WithPrompt overrides the extraction prompt for a probe kind. Unknown
// kinds are ignored.
func WithPrompt(kind ProbeKind, prompt string) ProbeOption {
	return func(c *ProbeConfig) {
		if p := c.prompt(kind); p != nil {
			*p = prompt
		}
	}
}

// WithTemperature sets the sampling temperature. Defaults to 0.
func WithTemperature(t float32) ProbeOption {
	return func(c *ProbeConfig) {
		c.Temperature = t
	}
}

// WithHeadless sets whether the engine's browser runs headless. Defaults to true.
func WithHeadless(headless bool) ProbeOption {
	return func(c *ProbeConfig) {
		c.Headless = headless
	}
}

// NewProbeConfig returns a ProbeConfig with the default prompts.
func NewProbeConfig(provider Provider, model, apiKey string, opts ...ProbeOption) ProbeConfig {
	c := ProbeConfig{
		Provider: provider,
		Model:    model,
		APIKey:   apiKey,
		Headless: true,

		capabilityPrompt:        DefaultPrompts[ProbeCapability],
		categoryPrompt:          DefaultPrompts[ProbeCategory],
		secondaryCategoryPrompt: DefaultPrompts[ProbeSecondaryCategory],
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Prompt returns the extraction prompt for kind, or "" for an unknown kind.
func (c ProbeConfig) Prompt(kind ProbeKind) string {
	if p := c.prompt(kind); p != nil {
		return *p
	}
	return ""
}

func (c *ProbeConfig) prompt(kind ProbeKind) *string {
	switch kind {
	case ProbeCapability:
		return &c.capabilityPrompt
	case ProbeCategory:
		return &c.categoryPrompt
	case ProbeSecondaryCategory:
		return &c.secondaryCategoryPrompt
	default:
		return nil
	}
}

// Validate returns ECONFIG if a required setting is missing.
func (c ProbeConfig) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return Errorf(ECONFIG, "unsupported provider %q", c.Provider)
	}
	if c.Model == "" {
		return Errorf(ECONFIG, "model required")
	}
	if c.APIKey == "" {
		return Errorf(ECONFIG, "API key required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return Errorf(ECONFIG, "temperature %v out of range [0, 2]", c.Temperature)
	}
	for _, kind := range ProbeKinds {
		if c.Prompt(kind) == "" {
			return Errorf(ECONFIG, "prompt for %s probe required", kind)
		}
	}
	return nil
}

// String hides the API key.
func (c ProbeConfig) String() string {
	return fmt.Sprintf("ProbeConfig{provider=%s model=%s temperature=%v headless=%t}",
		c.Provider, c.Model, c.Temperature, c.Headless)
}

// ScrapeResult is the structured JSON document produced by a Scraper. The raw
// bytes are kept so that key order survives.
type ScrapeResult struct {
	JSON []byte
}

// Scraper is the LLM-driven content extraction engine.
type Scraper interface {
	// Scrape extracts the information described by prompt from the page at
	// url and returns it as a JSON object. Any failure is returned as an error.
	Scrape(ctx context.Context, url, prompt string, cfg ProbeConfig) (*ScrapeResult, error)
}

// Labeler judges whether an extracted field is correct.
type Labeler interface {
	// Label returns true if value is an acceptable extraction for field.
	Label(field, value string) (bool, error)
}

// Prober runs scraping probes against a URL. Failures are absorbed:
// Capability returns false and Score returns nil.
type Prober interface {
	// Capability reports whether the engine completes on url without failing.
	Capability(ctx context.Context, url string) bool

	// Score returns the fraction of extracted fields labeled correct for a
	// scored probe kind, or nil if the score is unavailable.
	Score(ctx context.Context, url string, kind ProbeKind) *float64
}

// CompletionRequest is a single prompt sent to an LLM.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float32

	// JSON asks the model to answer with a JSON document.
	JSON bool
}

// Completer sends prompts to an LLM.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
