package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

// ollamaProvider translates recipes through a local Ollama server. Unlike
// the cloud variants it sends the whole recipe as one JSON document and
// expects a JSON-encoded recipe back.
type ollamaProvider struct {
	baseURL    string
	model      string
	httpc      *http.Client
	maxRetries int
	retryDelay time.Duration
	sleep      func(time.Duration)
}

func newOllamaProvider(cfg *Config) *ollamaProvider {
	timeout := cfg.OllamaTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ollamaProvider{
		baseURL:    strings.TrimRight(cfg.OllamaBaseURL, "/"),
		model:      cfg.OllamaModel,
		httpc:      &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		sleep:      cfg.sleepFunc(),
	}
}

// Name returns the provider name
func (p *ollamaProvider) Name() string { return "ollama" }

// IsAvailable checks that the Ollama server responds and the configured
// model is installed.
func (p *ollamaProvider) IsAvailable() error {
	resp, err := p.httpc.Get(p.baseURL + "/api/tags")
	if err != nil {
		return fmt.Errorf("failed to connect to Ollama at %s: %w", p.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Ollama API not available at %s (status %d)", p.baseURL, resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("failed to decode Ollama model list: %w", err)
	}

	var available []string
	for _, m := range tags.Models {
		if m.Name == p.model {
			return nil
		}
		available = append(available, m.Name)
	}
	return fmt.Errorf("model %q not found in Ollama (available: %s)", p.model, strings.Join(available, ", "))
}

// TranslateRecipe sends the whole recipe through the generate endpoint
// and decodes the returned JSON document. Identity fields and the extras
// bag are restored from the input so a confused model cannot change them.
func (p *ollamaProvider) TranslateRecipe(ctx context.Context, r *recipe.Recipe, targetLanguage string) (*recipe.Recipe, error) {
	recipeJSON, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, &Error{Provider: p.Name(), Msg: "failed to encode recipe", Cause: err}
	}

	raw, err := retryWithBackoff(p.Name(), p.maxRetries, p.retryDelay, p.sleep, func() (string, error) {
		return p.generate(ctx, recipePrompt(targetLanguage, string(recipeJSON)))
	})
	if err != nil {
		return nil, err
	}

	var translated recipe.Recipe
	if err := json.Unmarshal([]byte(raw), &translated); err != nil {
		return nil, &Error{Provider: p.Name(), Msg: "invalid JSON response from Ollama", Cause: err}
	}

	translated.ID = r.ID
	translated.Slug = r.Slug
	translated.Extras = r.Extras
	convertRecipeUnits(&translated)
	return &translated, nil
}

// generate performs one call against the Ollama generate endpoint.
func (p *ollamaProvider) generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"model":  p.model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error communicating with Ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama API request failed with status %d: %s", resp.StatusCode, body)
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode Ollama response: %w", err)
	}

	text := strings.TrimSpace(result.Response)
	if text == "" {
		return "", fmt.Errorf("empty response from Ollama")
	}
	return text, nil
}
