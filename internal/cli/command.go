package cli

import (
	"github.com/spf13/cobra"

	"codeberg.org/snonux/mealie-translate/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mealie-translate",
		Short: "Mealie Recipe Translator",
		Long: `mealie-translate translates recipes on a Mealie server into a target
language using OpenAI, Gemini or a local Ollama model, converting
imperial measurements to metric along the way.

Configuration comes from environment variables or a .env file.
Already translated recipes carry a marker in their extras field and
are skipped, so repeated runs are safe.

Examples:
  mealie-translate                          # Translate all unprocessed recipes
  mealie-translate --recipe pancakes        # Translate a single recipe
  mealie-translate --dry-run                # Preview changes without writing
  mealie-translate --env-file prod.env      # Use an alternate settings file`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.EnvFile, "env-file", "", "env file with settings (default is ./.env)")

	// Local flags
	cmd.Flags().StringVar(&flags.RecipeSlug, "recipe", "", "Translate a single recipe by slug")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Preview translations without modifying the server")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
}
