package translator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Deterministic imperial to metric conversion applied to translated text.
// The prompts ask the model to convert, but the conversion contract must
// hold regardless of model behavior, so any imperial reference the model
// left behind is converted here with the same fixed constants.

type unitRule struct {
	re     *regexp.Regexp
	factor float64
	unit   string
}

// Order matters: "fl oz" must match before the plain "oz" rule.
var unitRules = []unitRule{
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:fl\.?\s*oz|fluid ounces?)\b`), 30, "ml"},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*cups?\b`), 240, "ml"},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:tbsp|tablespoons?)\b`), 15, "ml"},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:tsp|teaspoons?)\b`), 5, "ml"},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:lbs?|pounds?)\b`), 455, "g"},
	{regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:oz|ounces?)\b`), 30, "g"},
}

var fahrenheitRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*°?\s*f(?:ahrenheit)?\b`)

// roundTo5 rounds to the nearest multiple of 5.
func roundTo5(v float64) int {
	return int(math.Round(v/5)) * 5
}

// convertImperial rewrites imperial measurement references in text to
// their metric equivalents, rounded to the nearest multiple of 5.
func convertImperial(text string) string {
	out := fahrenheitRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := fahrenheitRe.FindStringSubmatch(m)
		f, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return m
		}
		return fmt.Sprintf("%dC", roundTo5((f-32)*5/9))
	})

	for _, rule := range unitRules {
		out = rule.re.ReplaceAllStringFunc(out, func(m string) string {
			sub := rule.re.FindStringSubmatch(m)
			amount, err := strconv.ParseFloat(sub[1], 64)
			if err != nil {
				return m
			}
			return fmt.Sprintf("%d %s", roundTo5(amount*rule.factor), rule.unit)
		})
	}
	return out
}
