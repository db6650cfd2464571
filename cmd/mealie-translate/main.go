package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/mealie-translate/internal/cli"
	"codeberg.org/snonux/mealie-translate/internal/config"
	"codeberg.org/snonux/mealie-translate/internal/logging"
	"codeberg.org/snonux/mealie-translate/internal/mealie"
	"codeberg.org/snonux/mealie-translate/internal/models"
	"codeberg.org/snonux/mealie-translate/internal/processor"
	"codeberg.org/snonux/mealie-translate/internal/translator"
)

func main() {
	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), flags)
	}
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	settings, err := config.Load(flags.EnvFile)
	if err != nil {
		return err
	}

	// Flags win over environment settings.
	if flags.DryRun {
		settings.DryRun = true
	}
	if flags.LogLevel != "" {
		settings.LogLevel = flags.LogLevel
	}

	logger := logging.Init(settings.LogLevel)

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(settings.OpenAIKey)
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	store := mealie.NewClient(settings.MealieBaseURL, settings.MealieAPIToken, logging.Component(logger, "mealie"))

	provider, err := translator.New(&translator.Config{
		Provider:      settings.Provider,
		OpenAIKey:     settings.OpenAIKey,
		OpenAIModel:   settings.OpenAIModel,
		GeminiKey:     settings.GeminiKey,
		GeminiModel:   settings.GeminiModel,
		OllamaBaseURL: settings.OllamaBaseURL,
		OllamaModel:   settings.OllamaModel,
		OllamaTimeout: settings.OllamaTimeout,
		MaxRetries:    settings.MaxRetries,
		RetryDelay:    settings.RetryDelay,
	})
	if err != nil {
		return err
	}
	logger.Info().
		Str("provider", provider.Name()).
		Str("target_language", settings.TargetLanguage).
		Bool("dry_run", settings.DryRun).
		Msg("Translator ready")

	proc := processor.New(settings, store, provider, logging.Component(logger, "processor"))

	if flags.RecipeSlug != "" {
		return proc.ProcessSingleRecipe(ctx, flags.RecipeSlug)
	}

	stats, err := proc.ProcessAllRecipes(ctx)
	if err != nil {
		return err
	}
	logger.Info().
		Int("total", stats.TotalRecipes).
		Int("processed", stats.Processed).
		Int("skipped", stats.Skipped).
		Int("failed", stats.Failed).
		Msg("Run summary")
	return nil
}
