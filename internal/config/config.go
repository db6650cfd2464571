// Package config loads the immutable settings snapshot from environment
// variables, with optional .env file support. Settings are read once at
// startup and never mutated during a run.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Supported translator provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Settings holds the complete application configuration.
type Settings struct {
	// Mealie server
	MealieBaseURL  string
	MealieAPIToken string

	// Translator provider selection and credentials
	Provider      string
	OpenAIKey     string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string
	OllamaTimeout time.Duration

	// Translation behavior
	TargetLanguage string
	BatchSize      int
	MaxRetries     int
	RetryDelay     time.Duration

	// Dry run
	DryRun      bool
	DryRunLimit int

	LogLevel string
}

// Load reads settings from the environment. When envFile is non-empty it
// must exist; otherwise a .env in the working directory is loaded if
// present. Validation failures are fatal before any recipe is touched.
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		// Optional; missing .env is fine.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	s := &Settings{
		MealieBaseURL:  strings.TrimRight(strings.TrimSpace(v.GetString("MEALIE_BASE_URL")), "/"),
		MealieAPIToken: v.GetString("MEALIE_API_TOKEN"),

		Provider:      strings.ToLower(strings.TrimSpace(v.GetString("TRANSLATOR_PROVIDER"))),
		OpenAIKey:     v.GetString("OPENAI_API_KEY"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),
		GeminiKey:     v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		OllamaBaseURL: strings.TrimRight(v.GetString("OLLAMA_BASE_URL"), "/"),
		OllamaModel:   v.GetString("OLLAMA_MODEL"),
		OllamaTimeout: time.Duration(v.GetInt("OLLAMA_TIMEOUT")) * time.Second,

		TargetLanguage: titleCase(v.GetString("TARGET_LANGUAGE")),
		BatchSize:      v.GetInt("BATCH_SIZE"),
		MaxRetries:     v.GetInt("MAX_RETRIES"),
		RetryDelay:     time.Duration(v.GetFloat64("RETRY_DELAY") * float64(time.Second)),

		DryRun:      v.GetBool("DRY_RUN"),
		DryRunLimit: v.GetInt("DRY_RUN_LIMIT"),

		LogLevel: v.GetString("LOG_LEVEL"),
	}
	s.normalize()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("TRANSLATOR_PROVIDER", ProviderOpenAI)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("OLLAMA_BASE_URL", "http://localhost:11434")
	v.SetDefault("OLLAMA_TIMEOUT", 60)
	v.SetDefault("TARGET_LANGUAGE", "English")
	v.SetDefault("BATCH_SIZE", 10)
	v.SetDefault("MAX_RETRIES", 3)
	v.SetDefault("RETRY_DELAY", 1.0)
	v.SetDefault("DRY_RUN_LIMIT", 5)
	v.SetDefault("LOG_LEVEL", "info")
}

// normalize clamps out-of-range numeric settings back to their defaults.
func (s *Settings) normalize() {
	if s.BatchSize <= 0 {
		s.BatchSize = 10
	}
	if s.MaxRetries <= 0 {
		s.MaxRetries = 3
	}
	if s.RetryDelay <= 0 {
		s.RetryDelay = time.Second
	}
	if s.DryRunLimit <= 0 {
		s.DryRunLimit = 5
	}
	if s.OllamaTimeout <= 0 {
		s.OllamaTimeout = 60 * time.Second
	}
}

// Validate checks that the store and the selected provider are fully
// configured.
func (s *Settings) Validate() error {
	if s.MealieBaseURL == "" {
		return fmt.Errorf("MEALIE_BASE_URL is required")
	}
	if s.MealieAPIToken == "" {
		return fmt.Errorf("MEALIE_API_TOKEN is required")
	}

	switch s.Provider {
	case ProviderOpenAI:
		if s.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderGemini:
		if s.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOllama:
		if s.OllamaBaseURL == "" {
			return fmt.Errorf("OLLAMA_BASE_URL is required for the ollama provider")
		}
		if s.OllamaModel == "" {
			return fmt.Errorf("OLLAMA_MODEL is required for the ollama provider")
		}
	default:
		return fmt.Errorf("unsupported translator provider: %q (supported: openai, gemini, ollama)", s.Provider)
	}
	return nil
}

// titleCase normalizes a language name, e.g. "english" -> "English".
func titleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}
