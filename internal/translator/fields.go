package translator

import (
	"context"
	"strings"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

// textFunc translates one text field.
type textFunc func(ctx context.Context, text string) (string, error)

// batchFunc translates several short texts in one round-trip, preserving
// order and count.
type batchFunc func(ctx context.Context, texts []string) ([]string, error)

// translateFields walks every text-bearing recipe field: name,
// description, instruction texts, ingredient note/originalText, note
// title and text. Ingredient texts go through the batch path to save
// round-trips; everything else is translated one by one. Structured
// values pass through untouched on the returned copy.
func translateFields(ctx context.Context, r *recipe.Recipe, single textFunc, batch batchFunc) (*recipe.Recipe, error) {
	out := r.Clone()

	if strings.TrimSpace(out.Name) != "" {
		v, err := single(ctx, out.Name)
		if err != nil {
			return nil, err
		}
		out.Name = v
	}
	if strings.TrimSpace(out.Description) != "" {
		v, err := single(ctx, out.Description)
		if err != nil {
			return nil, err
		}
		out.Description = v
	}

	for i := range out.Instructions {
		if strings.TrimSpace(out.Instructions[i].Text) == "" {
			continue
		}
		v, err := single(ctx, out.Instructions[i].Text)
		if err != nil {
			return nil, err
		}
		out.Instructions[i].Text = v
	}

	if err := translateIngredients(ctx, out, batch); err != nil {
		return nil, err
	}

	for i := range out.Notes {
		if strings.TrimSpace(out.Notes[i].Title) != "" {
			v, err := single(ctx, out.Notes[i].Title)
			if err != nil {
				return nil, err
			}
			out.Notes[i].Title = v
		}
		if strings.TrimSpace(out.Notes[i].Text) != "" {
			v, err := single(ctx, out.Notes[i].Text)
			if err != nil {
				return nil, err
			}
			out.Notes[i].Text = v
		}
	}

	return out, nil
}

// translateIngredients collects the display texts of all ingredients,
// translates them in a single batch, and writes them back in order.
func translateIngredients(ctx context.Context, r *recipe.Recipe, batch batchFunc) error {
	var texts []string
	for _, ing := range r.Ingredients {
		if ing.Note != "" {
			texts = append(texts, ing.Note)
		}
		if ing.OriginalText != "" {
			texts = append(texts, ing.OriginalText)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	translated, err := batch(ctx, texts)
	if err != nil {
		return err
	}

	idx := 0
	for i := range r.Ingredients {
		if r.Ingredients[i].Note != "" {
			r.Ingredients[i].Note = translated[idx]
			idx++
		}
		if r.Ingredients[i].OriginalText != "" {
			r.Ingredients[i].OriginalText = translated[idx]
			idx++
		}
	}
	return nil
}

// convertRecipeUnits applies the metric post-pass to every text-bearing
// field in place. Used by the whole-recipe provider path where no
// per-field hook exists.
func convertRecipeUnits(r *recipe.Recipe) {
	r.Name = convertImperial(r.Name)
	r.Description = convertImperial(r.Description)
	for i := range r.Instructions {
		r.Instructions[i].Text = convertImperial(r.Instructions[i].Text)
	}
	for i := range r.Ingredients {
		r.Ingredients[i].Note = convertImperial(r.Ingredients[i].Note)
		r.Ingredients[i].OriginalText = convertImperial(r.Ingredients[i].OriginalText)
	}
	for i := range r.Notes {
		r.Notes[i].Title = convertImperial(r.Notes[i].Title)
		r.Notes[i].Text = convertImperial(r.Notes[i].Text)
	}
}
