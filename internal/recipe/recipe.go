// Package recipe models Mealie recipes as exchanged with the recipe API.
// The server expects complete recipe objects on update, so fields this
// tool does not understand are preserved verbatim across a JSON round-trip.
package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ProcessedKey is the extras key marking a recipe as already translated.
const ProcessedKey = "translated"

// Instruction is a single recipe step. Only Text is translated.
type Instruction struct {
	ID                   string          `json:"id,omitempty"`
	Title                string          `json:"title,omitempty"`
	Text                 string          `json:"text,omitempty"`
	IngredientReferences json.RawMessage `json:"ingredientReferences,omitempty"`
}

// Ingredient is a single ingredient entry. Note and OriginalText carry the
// human-readable text; quantity, unit and food are structured values the
// translator passes through untouched.
type Ingredient struct {
	Quantity      json.RawMessage `json:"quantity,omitempty"`
	Unit          json.RawMessage `json:"unit,omitempty"`
	Food          json.RawMessage `json:"food,omitempty"`
	Note          string          `json:"note,omitempty"`
	IsFood        *bool           `json:"isFood,omitempty"`
	DisableAmount *bool           `json:"disableAmount,omitempty"`
	Display       string          `json:"display,omitempty"`
	Title         json.RawMessage `json:"title,omitempty"`
	OriginalText  string          `json:"originalText,omitempty"`
	ReferenceID   string          `json:"referenceId,omitempty"`
}

// Note is a free-form recipe note with a title and body text.
type Note struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Recipe is a Mealie recipe. The listing endpoint returns a reduced form
// (possibly without extras), the detail endpoint the full form. Unknown
// fields survive Unmarshal/Marshal via the rest bag.
type Recipe struct {
	ID           string
	Slug         string
	Name         string
	Description  string
	Instructions []Instruction
	Ingredients  []Ingredient
	Notes        []Note
	Extras       map[string]string

	rest map[string]json.RawMessage
}

// knownKeys are the JSON keys mapped onto typed fields; everything else
// lands in rest.
var knownKeys = []string{
	"id", "slug", "name", "description",
	"recipeInstructions", "recipeIngredient", "notes", "extras",
}

// UnmarshalJSON decodes the typed fields and stashes every other key
// untouched so a later Marshal reproduces them.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	targets := map[string]any{
		"id":                 &r.ID,
		"slug":               &r.Slug,
		"name":               &r.Name,
		"description":        &r.Description,
		"recipeInstructions": &r.Instructions,
		"recipeIngredient":   &r.Ingredients,
		"notes":              &r.Notes,
		"extras":             &r.Extras,
	}
	for _, key := range knownKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		delete(raw, key)
		if string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, targets[key]); err != nil {
			return fmt.Errorf("recipe field %q: %w", key, err)
		}
	}
	r.rest = raw
	return nil
}

// MarshalJSON reassembles the full recipe object, unknown fields included.
func (r Recipe) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.rest)+len(knownKeys))
	for k, v := range r.rest {
		out[k] = v
	}

	set := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("recipe field %q: %w", key, err)
		}
		out[key] = b
		return nil
	}

	fields := map[string]any{
		"slug": r.Slug,
		"name": r.Name,
	}
	if r.ID != "" {
		fields["id"] = r.ID
	}
	if r.Description != "" {
		fields["description"] = r.Description
	}
	if r.Instructions != nil {
		fields["recipeInstructions"] = r.Instructions
	}
	if r.Ingredients != nil {
		fields["recipeIngredient"] = r.Ingredients
	}
	if r.Notes != nil {
		fields["notes"] = r.Notes
	}
	if r.Extras != nil {
		fields["extras"] = r.Extras
	}
	for key, v := range fields {
		if err := set(key, v); err != nil {
			return nil, err
		}
	}
	return json.Marshal(out)
}

// Identifier returns the stable identifier used in API paths: the slug,
// falling back to the ID for recipes that never got one.
func (r *Recipe) Identifier() string {
	if r.Slug != "" {
		return r.Slug
	}
	return r.ID
}

// IsProcessed reports whether the recipe carries the processed marker.
// The marker value matches case-insensitively against "true" and "1";
// a missing key or missing extras bag means unprocessed.
func (r *Recipe) IsProcessed() bool {
	if r.Extras == nil {
		return false
	}
	switch strings.ToLower(r.Extras[ProcessedKey]) {
	case "true", "1":
		return true
	}
	return false
}

// SetProcessed sets the processed marker, creating the extras bag if the
// recipe has none.
func (r *Recipe) SetProcessed() {
	if r.Extras == nil {
		r.Extras = map[string]string{}
	}
	r.Extras[ProcessedKey] = "true"
}

// Clone returns a copy safe to mutate: slices, the extras map and the
// unknown-field bag are duplicated. RawMessage payloads are shared since
// nothing here rewrites them in place.
func (r *Recipe) Clone() *Recipe {
	out := *r
	if r.Instructions != nil {
		out.Instructions = append([]Instruction(nil), r.Instructions...)
	}
	if r.Ingredients != nil {
		out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	}
	if r.Notes != nil {
		out.Notes = append([]Note(nil), r.Notes...)
	}
	if r.Extras != nil {
		out.Extras = make(map[string]string, len(r.Extras))
		for k, v := range r.Extras {
			out.Extras[k] = v
		}
	}
	if r.rest != nil {
		out.rest = make(map[string]json.RawMessage, len(r.rest))
		for k, v := range r.rest {
			out.rest[k] = v
		}
	}
	return &out
}
