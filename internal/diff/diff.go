// Package diff renders before/after recipe diffs for dry-run mode.
package diff

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

const (
	boxWidth = 50
	maxLines = 3 // text lines shown per field
	maxItems = 3 // list items shown per field
)

// HasChanges reports whether translation changed any of the displayed
// recipe fields.
func HasChanges(original, translated *recipe.Recipe) bool {
	if original.Name != translated.Name || original.Description != translated.Description {
		return true
	}
	if !equalTexts(instructionTexts(original), instructionTexts(translated)) {
		return true
	}
	return !equalTexts(ingredientTexts(original), ingredientTexts(translated))
}

// FormatRecipeDiff renders a multi-line diff of the fields that changed.
// Unchanged fields are omitted.
func FormatRecipeDiff(name string, original, translated *recipe.Recipe) string {
	lines := []string{fmt.Sprintf("[DRY RUN] Recipe: %s", name)}

	if block := textDiff("Title", original.Name, translated.Name); block != "" {
		lines = append(lines, block)
	}
	if block := textDiff("Description", original.Description, translated.Description); block != "" {
		lines = append(lines, block)
	}
	if block := listDiff("Instructions", instructionTexts(original), instructionTexts(translated)); block != "" {
		lines = append(lines, block)
	}
	if block := listDiff("Ingredients", ingredientTexts(original), ingredientTexts(translated)); block != "" {
		lines = append(lines, block)
	}

	return strings.Join(lines, "\n")
}

// LogDiff writes the formatted diff line by line, followed by a
// separator, so each line survives structured log formatting intact.
func LogDiff(logger zerolog.Logger, name string, original, translated *recipe.Recipe) {
	for _, line := range strings.Split(FormatRecipeDiff(name, original, translated), "\n") {
		logger.Info().Msg(line)
	}
	logger.Info().Msg(strings.Repeat("=", 60))
}

func instructionTexts(r *recipe.Recipe) []string {
	texts := make([]string, 0, len(r.Instructions))
	for _, ins := range r.Instructions {
		texts = append(texts, ins.Text)
	}
	return texts
}

// ingredientTexts picks the display text of each ingredient: the note
// when present, otherwise the original text.
func ingredientTexts(r *recipe.Recipe) []string {
	texts := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		switch {
		case ing.Note != "":
			texts = append(texts, ing.Note)
		case ing.OriginalText != "":
			texts = append(texts, ing.OriginalText)
		default:
			texts = append(texts, ing.Display)
		}
	}
	return texts
}

func equalTexts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func textDiff(field, original, translated string) string {
	if original == translated {
		return ""
	}

	origLines := headLines(original, maxLines)
	transLines := headLines(translated, maxLines)

	var body []string
	for i := 0; i < len(origLines) || i < len(transLines); i++ {
		if i < len(origLines) && origLines[i] != "" {
			body = append(body, diffLine("-", origLines[i]))
		}
		if i < len(transLines) && transLines[i] != "" {
			body = append(body, diffLine("+", transLines[i]))
		}
	}
	return box(field, body)
}

func listDiff(field string, original, translated []string) string {
	if equalTexts(original, translated) {
		return ""
	}

	shown := max(len(original), len(translated))
	if shown > maxItems {
		shown = maxItems
	}

	var body []string
	for i := 0; i < shown; i++ {
		if i < len(original) && original[i] != "" {
			body = append(body, diffLine("-", original[i]))
		}
		if i < len(translated) && translated[i] != "" {
			body = append(body, diffLine("+", translated[i]))
		}
	}
	if len(original) != len(translated) {
		count := fmt.Sprintf("(%d → %d items)", len(original), len(translated))
		body = append(body, "│ "+pad(count, boxWidth-4)+" │")
	}
	return box(field, body)
}

// box wraps body lines in a labelled box drawn with light box-drawing
// characters.
func box(field string, body []string) string {
	header := "┌─ " + field + " " + strings.Repeat("─", boxWidth-utf8.RuneCountInString(field)-6) + "─┐"
	footer := "└" + strings.Repeat("─", boxWidth-2) + "┘"

	lines := append([]string{header}, body...)
	lines = append(lines, footer)
	return strings.Join(lines, "\n")
}

func diffLine(sign, text string) string {
	return "│ " + sign + " " + pad(truncate(text, boxWidth-6), boxWidth-6) + " │"
}

func headLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

func truncate(s string, w int) string {
	if utf8.RuneCountInString(s) <= w {
		return s
	}
	return string([]rune(s)[:w]) + "..."
}

func pad(s string, w int) string {
	if n := w - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
