package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

// openAIProvider translates recipes through the OpenAI chat completion
// API, field by field.
type openAIProvider struct {
	apiKey     string
	client     *openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	sleep      func(time.Duration)
}

func newOpenAIProvider(cfg *Config) *openAIProvider {
	model := cfg.OpenAIModel
	if model == "" {
		model = openai.GPT4oMini
	}
	return &openAIProvider{
		apiKey:     cfg.OpenAIKey,
		client:     openai.NewClient(cfg.OpenAIKey),
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		sleep:      cfg.sleepFunc(),
	}
}

// Name returns the provider name
func (p *openAIProvider) Name() string { return "openai" }

// IsAvailable checks that the provider is configured. The first real
// completion surfaces auth or network failures through the retry path.
func (p *openAIProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// TranslateRecipe translates all text-bearing fields of the recipe.
func (p *openAIProvider) TranslateRecipe(ctx context.Context, r *recipe.Recipe, targetLanguage string) (*recipe.Recipe, error) {
	single := func(ctx context.Context, text string) (string, error) {
		out, err := p.complete(ctx, textPrompt(targetLanguage, text))
		if err != nil {
			return "", err
		}
		return convertImperial(out), nil
	}
	batch := func(ctx context.Context, texts []string) ([]string, error) {
		out, err := p.complete(ctx, ingredientPrompt(targetLanguage, formatNumbered(texts)))
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

// complete sends one chat completion with the retry policy applied.
func (p *openAIProvider) complete(ctx context.Context, prompt string) (string, error) {
	return retryWithBackoff(p.Name(), p.maxRetries, p.retryDelay, p.sleep, func() (string, error) {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemMessage},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   2000,
			Temperature: 0.1, // low temperature for consistent translations
		})
		if err != nil {
			return "", fmt.Errorf("OpenAI API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no completion returned")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
}
