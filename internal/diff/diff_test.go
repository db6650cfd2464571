package diff

import (
	"strings"
	"testing"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

func TestHasChanges(t *testing.T) {
	original := &recipe.Recipe{
		Name:        "Pancakes",
		Description: "Breakfast",
		Instructions: []recipe.Instruction{
			{Text: "Mix"},
		},
		Ingredients: []recipe.Ingredient{
			{Note: "1 cup flour"},
		},
	}

	same := &recipe.Recipe{
		Name:        "Pancakes",
		Description: "Breakfast",
		Instructions: []recipe.Instruction{
			{Text: "Mix"},
		},
		Ingredients: []recipe.Ingredient{
			{Note: "1 cup flour"},
		},
	}
	if HasChanges(original, same) {
		t.Error("identical recipes should report no changes")
	}

	renamed := *same
	renamed.Name = "Pfannkuchen"
	if !HasChanges(original, &renamed) {
		t.Error("changed name should be detected")
	}

	moreIngredients := &recipe.Recipe{
		Name:        "Pancakes",
		Description: "Breakfast",
		Instructions: []recipe.Instruction{
			{Text: "Mix"},
		},
		Ingredients: []recipe.Ingredient{
			{Note: "1 cup flour"},
			{Note: "2 eggs"},
		},
	}
	if !HasChanges(original, moreIngredients) {
		t.Error("ingredient count change should be detected")
	}
}

func TestFormatRecipeDiffOmitsUnchangedFields(t *testing.T) {
	original := &recipe.Recipe{Name: "Pancakes", Description: "Breakfast"}
	translated := &recipe.Recipe{Name: "Pfannkuchen", Description: "Breakfast"}

	out := FormatRecipeDiff("pancakes", original, translated)

	if !strings.Contains(out, "[DRY RUN] Recipe: pancakes") {
		t.Errorf("missing dry-run header:\n%s", out)
	}
	if !strings.Contains(out, "Title") {
		t.Errorf("changed title should be rendered:\n%s", out)
	}
	if strings.Contains(out, "Description") {
		t.Errorf("unchanged description should be omitted:\n%s", out)
	}
	if !strings.Contains(out, "- Pancakes") || !strings.Contains(out, "+ Pfannkuchen") {
		t.Errorf("diff should show before and after lines:\n%s", out)
	}
}

func TestFormatRecipeDiffListCounts(t *testing.T) {
	original := &recipe.Recipe{
		Name: "Soup",
		Ingredients: []recipe.Ingredient{
			{Note: "1 onion"},
		},
	}
	translated := &recipe.Recipe{
		Name: "Soup",
		Ingredients: []recipe.Ingredient{
			{Note: "1 Zwiebel"},
			{Note: "Salz"},
		},
	}

	out := FormatRecipeDiff("soup", original, translated)
	if !strings.Contains(out, "(1 → 2 items)") {
		t.Errorf("length mismatch should render a count line:\n%s", out)
	}
	if !strings.Contains(out, "+ 1 Zwiebel") {
		t.Errorf("translated item missing:\n%s", out)
	}
}

func TestFormatRecipeDiffTruncatesLongItems(t *testing.T) {
	long := strings.Repeat("x", 120)
	original := &recipe.Recipe{Name: "A", Description: long}
	translated := &recipe.Recipe{Name: "A", Description: "kurz"}

	out := FormatRecipeDiff("a", original, translated)
	if !strings.Contains(out, "...") {
		t.Errorf("long lines should be truncated:\n%s", out)
	}
	if strings.Contains(out, long) {
		t.Errorf("full long line should not appear:\n%s", out)
	}
}

func TestFormatRecipeDiffShowsAtMostThreeItems(t *testing.T) {
	original := &recipe.Recipe{Name: "A"}
	translated := &recipe.Recipe{Name: "A"}
	for _, n := range []string{"one", "two", "three", "four", "five"} {
		original.Ingredients = append(original.Ingredients, recipe.Ingredient{Note: n})
		translated.Ingredients = append(translated.Ingredients, recipe.Ingredient{Note: strings.ToUpper(n)})
	}

	out := FormatRecipeDiff("a", original, translated)
	if strings.Contains(out, "- four") || strings.Contains(out, "+ FOUR") {
		t.Errorf("only the first three items should be shown:\n%s", out)
	}
	if !strings.Contains(out, "- three") {
		t.Errorf("third item should be shown:\n%s", out)
	}
}
