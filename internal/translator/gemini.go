package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

// geminiProvider translates recipes through the Gemini API, field by
// field, with the same prompts as the OpenAI variant.
type geminiProvider struct {
	apiKey     string
	client     *genai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	sleep      func(time.Duration)
}

func newGeminiProvider(cfg *Config) (*geminiProvider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	model := cfg.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &geminiProvider{
		apiKey:     cfg.GeminiKey,
		client:     client,
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		sleep:      cfg.sleepFunc(),
	}, nil
}

// Name returns the provider name
func (p *geminiProvider) Name() string { return "gemini" }

// IsAvailable checks that the provider is configured.
func (p *geminiProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	if p.client == nil {
		return fmt.Errorf("Gemini client not initialized")
	}
	return nil
}

// TranslateRecipe translates all text-bearing fields of the recipe.
func (p *geminiProvider) TranslateRecipe(ctx context.Context, r *recipe.Recipe, targetLanguage string) (*recipe.Recipe, error) {
	single := func(ctx context.Context, text string) (string, error) {
		out, err := p.generate(ctx, textPrompt(targetLanguage, text))
		if err != nil {
			return "", err
		}
		return convertImperial(out), nil
	}
	batch := func(ctx context.Context, texts []string) ([]string, error) {
		out, err := p.generate(ctx, ingredientPrompt(targetLanguage, formatNumbered(texts)))
		if err != nil {
			return nil, err
		}
		translated := parseNumbered(out, texts)
		for i, t := range translated {
			translated[i] = convertImperial(t)
		}
		return translated, nil
	}
	return translateFields(ctx, r, single, batch)
}

// generate sends one content generation request with the retry policy
// applied.
func (p *geminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	return retryWithBackoff(p.Name(), p.maxRetries, p.retryDelay, p.sleep, func() (string, error) {
		resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](0.1),
			SystemInstruction: genai.NewContentFromText(systemMessage, genai.RoleUser),
		})
		if err != nil {
			return "", fmt.Errorf("Gemini API error: %w", err)
		}
		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return "", fmt.Errorf("empty response from Gemini")
		}
		return text, nil
	})
}
