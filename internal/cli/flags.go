package cli

// Flags holds all command-line flag values
type Flags struct {
	// EnvFile is an alternate .env file path; the default is ./.env.
	EnvFile string

	// RecipeSlug limits the run to a single recipe.
	RecipeSlug string

	DryRun     bool
	ListModels bool
	LogLevel   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{}
}
