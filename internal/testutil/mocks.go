// Package testutil provides shared test doubles for the recipe store
// and the translation providers.
package testutil

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

// MockStore is an in-memory recipe store with scriptable failures.
// Recipes are keyed by slug; Order fixes the listing order.
type MockStore struct {
	Recipes map[string]*recipe.Recipe
	Order   []string

	ListErr      error
	GetErrors    map[string]error
	UpdateErrors map[string]error
	MarkErrors   map[string]error

	// Calls records every store operation as "<op> <slug>".
	Calls []string
}

// NewMockStore builds a store holding the given recipes in order.
func NewMockStore(recipes ...*recipe.Recipe) *MockStore {
	s := &MockStore{
		Recipes:      make(map[string]*recipe.Recipe),
		GetErrors:    make(map[string]error),
		UpdateErrors: make(map[string]error),
		MarkErrors:   make(map[string]error),
	}
	for _, r := range recipes {
		s.Recipes[r.Slug] = r
		s.Order = append(s.Order, r.Slug)
	}
	return s
}

func (s *MockStore) List(ctx context.Context) ([]recipe.Recipe, error) {
	s.Calls = append(s.Calls, "list")
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	// Listings carry summaries only: identity fields but no extras,
	// mirroring the paginated recipe endpoint.
	out := make([]recipe.Recipe, 0, len(s.Order))
	for _, slug := range s.Order {
		r := s.Recipes[slug]
		out = append(out, recipe.Recipe{ID: r.ID, Slug: r.Slug, Name: r.Name})
	}
	return out, nil
}

func (s *MockStore) Get(ctx context.Context, slug string) (*recipe.Recipe, error) {
	s.Calls = append(s.Calls, "get "+slug)
	if err := s.GetErrors[slug]; err != nil {
		return nil, err
	}
	r, ok := s.Recipes[slug]
	if !ok {
		return nil, fmt.Errorf("recipe %q not found", slug)
	}
	return r.Clone(), nil
}

func (s *MockStore) Update(ctx context.Context, slug string, r *recipe.Recipe) error {
	s.Calls = append(s.Calls, "update "+slug)
	if err := s.UpdateErrors[slug]; err != nil {
		return err
	}
	s.Recipes[slug] = r.Clone()
	return nil
}

func (s *MockStore) MarkProcessed(ctx context.Context, slug string) error {
	s.Calls = append(s.Calls, "mark "+slug)
	if err := s.MarkErrors[slug]; err != nil {
		return err
	}
	r, ok := s.Recipes[slug]
	if !ok {
		return fmt.Errorf("recipe %q not found", slug)
	}
	r.SetProcessed()
	return nil
}

// CallCount returns how many recorded calls start with the given prefix.
func (s *MockStore) CallCount(prefix string) int {
	n := 0
	for _, c := range s.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// MockProvider is a translation provider that prefixes translated text
// with the target language and can fail for selected slugs.
type MockProvider struct {
	// Errors maps slugs to the error TranslateRecipe should return.
	Errors map[string]error

	// Translated records the slugs translated, in order.
	Translated []string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{Errors: make(map[string]error)}
}

func (p *MockProvider) TranslateRecipe(ctx context.Context, r *recipe.Recipe, targetLanguage string) (*recipe.Recipe, error) {
	if err := p.Errors[r.Slug]; err != nil {
		return nil, err
	}
	p.Translated = append(p.Translated, r.Slug)

	out := r.Clone()
	out.Name = "[" + targetLanguage + "] " + r.Name
	for i := range out.Instructions {
		out.Instructions[i].Text = "[" + targetLanguage + "] " + out.Instructions[i].Text
	}
	return out, nil
}

func (p *MockProvider) Name() string { return "mock" }

func (p *MockProvider) IsAvailable() error { return nil }
