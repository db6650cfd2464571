package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListAvailableModels writes the chat models usable for recipe
// translation to w, most relevant families first.
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure it in the .env file")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	chatModels := []string{}
	for _, model := range models.Models {
		if strings.Contains(model.ID, "gpt") || strings.Contains(model.ID, "chat") {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)

	fmt.Fprintln(w, "Available OpenAI chat models for translation:")
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}

	if len(chatModels) > 10 {
		// Show only the relevant families
		relevant := []string{}
		for _, model := range chatModels {
			if strings.Contains(model, "gpt-4") || strings.Contains(model, "gpt-3.5") {
				relevant = append(relevant, model)
			}
		}
		for _, model := range relevant {
			fmt.Fprintf(w, "  %s\n", model)
		}
		fmt.Fprintf(w, "  ... and %d more models\n", len(chatModels)-len(relevant))
	} else {
		for _, model := range chatModels {
			fmt.Fprintf(w, "  %s\n", model)
		}
	}

	return nil
}
