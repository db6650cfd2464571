package translator

import (
	"fmt"
	"strings"
)

// formatNumbered renders texts as a numbered list, one item per line,
// in the "<n>. <text>" protocol the batch prompts expect.
func formatNumbered(texts []string) string {
	lines := make([]string, len(texts))
	for i, text := range texts {
		lines[i] = fmt.Sprintf("%d. %s", i+1, text)
	}
	return strings.Join(lines, "\n")
}

// parseNumbered splits a numbered-list response back into plain texts.
// The result always has exactly len(originals) entries: a short response
// is padded with the untranslated originals, a long one truncated.
func parseNumbered(response string, originals []string) []string {
	var parsed []string
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		if line == "" {
			continue
		}
		if _, rest, ok := strings.Cut(line, ". "); ok {
			parsed = append(parsed, rest)
		} else {
			parsed = append(parsed, line)
		}
	}

	for len(parsed) < len(originals) {
		parsed = append(parsed, originals[len(parsed)])
	}
	return parsed[:len(originals)]
}
