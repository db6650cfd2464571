package translator

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

// Provider defines the interface for translation backends.
type Provider interface {
	// TranslateRecipe returns a translated copy of the recipe. The input
	// recipe is never modified.
	TranslateRecipe(ctx context.Context, r *recipe.Recipe, targetLanguage string) (*recipe.Recipe, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Error is a translation failure tagged with the provider that caused it.
type Error struct {
	Provider string
	Msg      string
	Cause    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Provider != "" {
		msg = "[" + e.Provider + "] " + msg
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Config holds common configuration for translation providers.
type Config struct {
	Provider string // Provider name: "openai", "gemini" or "ollama"

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string

	// Ollama-specific settings
	OllamaBaseURL string
	OllamaModel   string
	OllamaTimeout time.Duration

	// Retry policy for transient provider failures
	MaxRetries int
	RetryDelay time.Duration

	// Sleep is the suspension hook used between retries; tests replace it.
	Sleep func(time.Duration)
}

func (c *Config) sleepFunc() func(time.Duration) {
	if c.Sleep != nil {
		return c.Sleep
	}
	return time.Sleep
}

// New creates the appropriate translation provider based on configuration
// and verifies its availability. Misconfiguration surfaces here, before
// any recipe is touched.
func New(cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, &Error{Msg: "no translator configuration"}
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, &Error{Provider: "openai", Msg: "OpenAI API key is required but not provided"}
		}
		p = newOpenAIProvider(cfg)
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, &Error{Provider: "gemini", Msg: "Gemini API key is required but not provided"}
		}
		p, err = newGeminiProvider(cfg)
		if err != nil {
			return nil, &Error{Provider: "gemini", Msg: "failed to create Gemini client", Cause: err}
		}
	case "ollama":
		if cfg.OllamaBaseURL == "" {
			return nil, &Error{Provider: "ollama", Msg: "Ollama base URL is required but not provided"}
		}
		if cfg.OllamaModel == "" {
			return nil, &Error{Provider: "ollama", Msg: "Ollama model is required but not provided"}
		}
		p = newOllamaProvider(cfg)
	default:
		return nil, &Error{Msg: fmt.Sprintf("unsupported translator provider: %q (supported: openai, gemini, ollama)", cfg.Provider)}
	}

	if err := p.IsAvailable(); err != nil {
		return nil, &Error{Provider: p.Name(), Msg: "provider is not available", Cause: err}
	}
	return p, nil
}

// retryWithBackoff runs fn up to max attempts with exponential backoff
// (delay * 2^attempt). Exhaustion yields a typed Error carrying the
// provider name and the last underlying cause.
func retryWithBackoff(provider string, max int, delay time.Duration, sleep func(time.Duration), fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < max; attempt++ {
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if attempt < max-1 {
			sleep(delay * (1 << attempt))
		}
	}
	return "", &Error{
		Provider: provider,
		Msg:      fmt.Sprintf("translation failed after %d attempts", max),
		Cause:    lastErr,
	}
}
