package mealie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-token", zerolog.Nop())
	client.sleep = func(time.Duration) {} // no real waiting in tests
	return client, server
}

func listPage(t *testing.T, w http.ResponseWriter, items []map[string]any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(map[string]any{"items": items}); err != nil {
		t.Fatalf("encode listing: %v", err)
	}
}

func TestListPaginates(t *testing.T) {
	var pages []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recipes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		page := r.URL.Query().Get("page")
		pages = append(pages, page)

		switch page {
		case "1":
			// A full page keeps pagination going
			items := make([]map[string]any, listPageSize)
			for i := range items {
				items[i] = map[string]any{"slug": fmt.Sprintf("recipe-%d", i), "name": "Recipe"}
			}
			listPage(t, w, items)
		default:
			listPage(t, w, []map[string]any{{"slug": "last", "name": "Last"}})
		}
	}))

	recipes, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recipes) != listPageSize+1 {
		t.Errorf("Expected %d recipes, got %d", listPageSize+1, len(recipes))
	}
	if len(pages) != 2 {
		t.Errorf("Expected 2 page requests, got %v", pages)
	}
}

func TestListEmptyStore(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listPage(t, w, nil)
	}))

	recipes, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("Expected empty listing, got %d recipes", len(recipes))
	}
}

func TestGetNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := client.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetDecodesRecipe(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recipes/pancakes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"slug":"pancakes","name":"Pancakes","extras":{"translated":"true"}}`)
	}))

	r, err := client.Get(context.Background(), "pancakes")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if r.Name != "Pancakes" || !r.IsProcessed() {
		t.Errorf("Recipe not decoded correctly: %+v", r)
	}
}

func TestUpdateSendsFullRecipe(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode update body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))

	r := &recipe.Recipe{Slug: "pancakes", Name: "Pfannkuchen"}
	if err := client.Update(context.Background(), "pancakes", r); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if gotBody["name"] != "Pfannkuchen" {
		t.Errorf("server did not receive the recipe body: %v", gotBody)
	}
}

func TestUpdateRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":"missing field"}`)
	}))

	err := client.Update(context.Background(), "pancakes", &recipe.Recipe{Slug: "pancakes"})
	if err == nil {
		t.Fatal("Expected error for rejected update")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("Error should carry the status code, got: %v", err)
	}
}

func TestMarkProcessed(t *testing.T) {
	var updated map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"slug":"soup","name":"Soup","totalTime":"PT1H","extras":{}}`)
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
				t.Fatalf("decode update: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}
	}))

	if err := client.MarkProcessed(context.Background(), "soup"); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}
	extras, ok := updated["extras"].(map[string]any)
	if !ok || extras["translated"] != "true" {
		t.Errorf("Marker not written, update body: %v", updated)
	}
	// Full replacement: unknown fields must survive the round-trip
	if updated["totalTime"] != "PT1H" {
		t.Errorf("Unknown field lost in mark-processed update: %v", updated)
	}
}

func TestMarkProcessedAlreadyMarked(t *testing.T) {
	puts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"slug":"soup","name":"Soup","extras":{"translated":"1"}}`)
		case http.MethodPut:
			puts++
			w.WriteHeader(http.StatusOK)
		}
	}))

	if err := client.MarkProcessed(context.Background(), "soup"); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}
	if puts != 0 {
		t.Errorf("Expected no update for already marked recipe, got %d PUTs", puts)
	}
}

func TestRetryOnTransientStatus(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"slug":"soup","name":"Soup"}`)
	}))

	r, err := client.Get(context.Background(), "soup")
	if err != nil {
		t.Fatalf("Get failed after retries: %v", err)
	}
	if r.Name != "Soup" {
		t.Errorf("Unexpected recipe: %+v", r)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestRetryExhaustion(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.Get(context.Background(), "soup")
	if err == nil {
		t.Fatal("Expected error after exhausted retries")
	}
	if attempts != maxAttempts {
		t.Errorf("Expected %d attempts, got %d", maxAttempts, attempts)
	}
}

func TestNotFoundIsNotRetried(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.NotFound(w, r)
	}))

	_, err := client.Get(context.Background(), "gone")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("404 must not be retried, got %d attempts", attempts)
	}
}
