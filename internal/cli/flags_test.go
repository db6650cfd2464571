package cli

import (
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Everything starts zero-valued; settings come from the environment.
	stringTests := []struct {
		name  string
		value string
	}{
		{"EnvFile", flags.EnvFile},
		{"RecipeSlug", flags.RecipeSlug},
		{"LogLevel", flags.LogLevel},
	}
	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}

	boolTests := []struct {
		name  string
		value bool
	}{
		{"DryRun", flags.DryRun},
		{"ListModels", flags.ListModels},
	}
	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value {
				t.Errorf("%s = true, want false", tt.name)
			}
		})
	}
}
