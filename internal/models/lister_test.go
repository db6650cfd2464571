package models

import (
	"context"
	"os"
	"strings"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}
	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("")

	err := lister.ListAvailableModels(context.Background(), os.Stdout)
	if err == nil {
		t.Error("Expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "OpenAI API key not found") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	lister := NewLister(apiKey)

	var out strings.Builder
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available OpenAI chat models") {
		t.Errorf("Unexpected output: %s", out.String())
	}
}
