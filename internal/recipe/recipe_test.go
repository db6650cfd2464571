package recipe

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIsProcessed(t *testing.T) {
	tests := []struct {
		name   string
		extras map[string]string
		want   bool
	}{
		{"true value", map[string]string{"translated": "true"}, true},
		{"numeric value", map[string]string{"translated": "1"}, true},
		{"mixed case", map[string]string{"translated": "True"}, true},
		{"upper case", map[string]string{"translated": "TRUE"}, true},
		{"false value", map[string]string{"translated": "false"}, false},
		{"empty value", map[string]string{"translated": ""}, false},
		{"missing key", map[string]string{"other": "true"}, false},
		{"empty extras", map[string]string{}, false},
		{"nil extras", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recipe{Slug: "test", Extras: tt.extras}
			if got := r.IsProcessed(); got != tt.want {
				t.Errorf("IsProcessed() with extras %v = %v, want %v", tt.extras, got, tt.want)
			}
		})
	}
}

func TestSetProcessed(t *testing.T) {
	r := &Recipe{Slug: "test"}

	r.SetProcessed()
	if !r.IsProcessed() {
		t.Error("Expected recipe to be processed after SetProcessed")
	}
	if r.Extras[ProcessedKey] != "true" {
		t.Errorf("Expected extras[%q] = \"true\", got %q", ProcessedKey, r.Extras[ProcessedKey])
	}

	// Setting again must not disturb other extras
	r.Extras["source"] = "import"
	r.SetProcessed()
	if r.Extras["source"] != "import" {
		t.Error("SetProcessed clobbered unrelated extras entry")
	}
}

func TestIdentifier(t *testing.T) {
	r := &Recipe{Slug: "pancakes", ID: "abc-123"}
	if got := r.Identifier(); got != "pancakes" {
		t.Errorf("Identifier() = %q, want slug", got)
	}

	r = &Recipe{ID: "abc-123"}
	if got := r.Identifier(); got != "abc-123" {
		t.Errorf("Identifier() = %q, want id fallback", got)
	}

	r = &Recipe{}
	if got := r.Identifier(); got != "" {
		t.Errorf("Identifier() = %q, want empty", got)
	}
}

func TestJSONRoundTripPreservesUnknownFields(t *testing.T) {
	payload := `{
		"id": "abc",
		"slug": "pancakes",
		"name": "Pancakes",
		"description": "Fluffy",
		"recipeYield": "4 servings",
		"prepTime": "PT10M",
		"settings": {"public": true},
		"recipeIngredient": [
			{"quantity": 2.0, "unit": {"name": "cup"}, "note": "2 cups flour", "originalText": "2 cups all-purpose flour"}
		],
		"recipeInstructions": [
			{"id": "i1", "text": "Mix everything."}
		],
		"notes": [{"title": "Tip", "text": "Rest the batter."}],
		"extras": {"translated": "false"}
	}`

	var r Recipe
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if r.Name != "Pancakes" || r.Slug != "pancakes" {
		t.Errorf("Typed fields not decoded: name=%q slug=%q", r.Name, r.Slug)
	}
	if len(r.Ingredients) != 1 || r.Ingredients[0].Note != "2 cups flour" {
		t.Fatalf("Ingredients not decoded: %+v", r.Ingredients)
	}
	if string(r.Ingredients[0].Unit) != `{"name": "cup"}` {
		t.Errorf("Unit not passed through raw: %s", r.Ingredients[0].Unit)
	}

	out, err := json.Marshal(&r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, want := range []string{`"recipeYield":"4 servings"`, `"prepTime":"PT10M"`, `"public":true`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Round-trip dropped unknown field, output missing %s:\n%s", want, out)
		}
	}
}

func TestJSONRoundTripAfterMutation(t *testing.T) {
	payload := `{"slug": "soup", "name": "Soup", "totalTime": "PT1H", "extras": {}}`

	var r Recipe
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	r.Name = "Suppe"
	r.SetProcessed()

	out, err := json.Marshal(&r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `"name":"Suppe"`) {
		t.Errorf("Mutated name not marshalled: %s", s)
	}
	if !strings.Contains(s, `"translated":"true"`) {
		t.Errorf("Processed marker not marshalled: %s", s)
	}
	if !strings.Contains(s, `"totalTime":"PT1H"`) {
		t.Errorf("Unknown field lost after mutation: %s", s)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := &Recipe{
		Slug:         "cake",
		Name:         "Cake",
		Instructions: []Instruction{{Text: "Bake."}},
		Ingredients:  []Ingredient{{Note: "1 lb sugar"}},
		Extras:       map[string]string{"translated": "false"},
	}

	c := r.Clone()
	c.Name = "Kuchen"
	c.Instructions[0].Text = "Backen."
	c.Ingredients[0].Note = "455 g sugar"
	c.Extras["translated"] = "true"

	if r.Name != "Cake" {
		t.Error("Clone shares Name with original")
	}
	if r.Instructions[0].Text != "Bake." {
		t.Error("Clone shares instruction slice with original")
	}
	if r.Ingredients[0].Note != "1 lb sugar" {
		t.Error("Clone shares ingredient slice with original")
	}
	if r.Extras["translated"] != "false" {
		t.Error("Clone shares extras map with original")
	}
}
