// Package cli provides command-line interface setup for the
// mealie-translate application. It handles flag parsing and command
// creation using cobra.
package cli
