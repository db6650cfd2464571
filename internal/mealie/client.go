package mealie

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/mealie-translate/internal/recipe"
)

// ErrNotFound is returned when a recipe slug does not resolve.
var ErrNotFound = errors.New("recipe not found")

const (
	listPageSize = 50
	maxAttempts  = 3
	retryBase    = time.Second
)

// Client talks to the Mealie recipe API with bearer-token auth. Every
// round-trip goes through a circuit breaker so a down server fails fast
// instead of timing out recipe by recipe.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  zerolog.Logger
	sleep   func(time.Duration)
}

// NewClient creates a Mealie API client for the given server.
func NewClient(baseURL, token string, logger zerolog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "mealie",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		breaker: breaker,
		logger:  logger,
		sleep:   time.Sleep,
	}
}

// List fetches the complete recipe listing, paginating until a short or
// empty page. Listing entries may lack the extras bag; callers needing
// the processed marker must fetch the full record via Get.
func (c *Client) List(ctx context.Context) ([]recipe.Recipe, error) {
	var all []recipe.Recipe

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("perPage", strconv.Itoa(listPageSize))
		query.Set("orderBy", "name")
		query.Set("orderDirection", "asc")

		resp, err := c.do(ctx, http.MethodGet, "/api/recipes", query, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list recipes (page %d): %w", page, err)
		}
		if resp.status != http.StatusOK {
			return nil, fmt.Errorf("failed to list recipes (page %d): status %d", page, resp.status)
		}

		var payload struct {
			Items []recipe.Recipe `json:"items"`
		}
		if err := json.Unmarshal(resp.body, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode recipe listing (page %d): %w", page, err)
		}

		all = append(all, payload.Items...)
		if len(payload.Items) < listPageSize {
			break
		}
	}

	c.logger.Info().Int("count", len(all)).Msg("fetched recipe listing")
	return all, nil
}

// Get fetches the full recipe detail for a slug. A 404 yields ErrNotFound.
func (c *Client) Get(ctx context.Context, slug string) (*recipe.Recipe, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/recipes/"+url.PathEscape(slug), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe %q: %w", slug, err)
	}
	if resp.status == http.StatusNotFound {
		return nil, fmt.Errorf("recipe %q: %w", slug, ErrNotFound)
	}
	if resp.status != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch recipe %q: status %d", slug, resp.status)
	}

	var r recipe.Recipe
	if err := json.Unmarshal(resp.body, &r); err != nil {
		return nil, fmt.Errorf("failed to decode recipe %q: %w", slug, err)
	}
	c.logger.Debug().Str("slug", slug).Str("name", r.Name).Msg("fetched recipe detail")
	return &r, nil
}

// Update replaces a recipe on the server. Mealie expects the complete
// recipe object, not a patch.
func (c *Client) Update(ctx context.Context, slug string, r *recipe.Recipe) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode recipe %q: %w", slug, err)
	}

	resp, err := c.do(ctx, http.MethodPut, "/api/recipes/"+url.PathEscape(slug), nil, body)
	if err != nil {
		return fmt.Errorf("failed to update recipe %q: %w", slug, err)
	}
	if resp.status < 200 || resp.status >= 300 {
		detail := string(resp.body)
		if len(detail) > 500 {
			detail = detail[:500]
		}
		c.logger.Error().Str("slug", slug).Int("status", resp.status).Str("detail", detail).Msg("recipe update rejected")
		return fmt.Errorf("failed to update recipe %q: status %d", slug, resp.status)
	}

	c.logger.Info().Str("slug", slug).Msg("updated recipe")
	return nil
}

// MarkProcessed sets the processed marker on a recipe via
// read-modify-write. Already marked recipes are left untouched.
func (c *Client) MarkProcessed(ctx context.Context, slug string) error {
	r, err := c.Get(ctx, slug)
	if err != nil {
		return err
	}
	if r.IsProcessed() {
		return nil
	}

	r.SetProcessed()
	return c.Update(ctx, slug, r)
}

type apiResponse struct {
	status int
	body   []byte
}

// transientStatus mirrors the retry policy of common HTTP retry
// middlewares: rate limiting and server-side failures are worth retrying.
func transientStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// do performs one API call with up to maxAttempts tries. Each attempt is
// a separate breaker execution so consecutive failures trip it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*apiResponse, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			c.sleep(retryBase * time.Duration(attempt))
		}

		resp, err := c.roundTrip(ctx, method, path, query, body)
		if err != nil {
			lastErr = err
			c.logger.Warn().Str("method", method).Str("path", path).Int("attempt", attempt+1).Err(err).Msg("request failed")
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body []byte) (*apiResponse, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		u := c.baseURL + path
		if len(query) > 0 {
			u += "?" + query.Encode()
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if transientStatus(resp.StatusCode) {
			return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return &apiResponse{status: resp.StatusCode, body: data}, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*apiResponse), nil
}
