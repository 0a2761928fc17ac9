package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pageza/mealfinder/internal/model"
)

const (
	// DefaultCatalogURL is the public TheMealDB v1 API root.
	DefaultCatalogURL = "https://www.themealdb.com/api/json/v1/1"
	defaultUserAgent  = "mealfinder/1.0"
)

// ErrRecipeNotFound is returned by LookupByID when the catalog has no recipe for the id.
var ErrRecipeNotFound = errors.New("recipe not found")

// NetworkError reports a transport failure or a non-2xx response from the catalog.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog request %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("catalog request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a catalog response body that is not valid JSON.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode catalog response %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// mealsResponse is the envelope shared by the search and lookup endpoints.
// Meals is nil when the catalog answers {"meals": null}.
type mealsResponse struct {
	Meals []model.RecipeRecord `json:"meals"`
}

// CatalogClient queries the remote recipe catalog.
type CatalogClient struct {
	baseURL string
	ua      string
	http    *http.Client
	timeout time.Duration

	// Identical in-flight requests share one upstream call.
	inflight singleflight.Group
}

// CatalogOption configures a CatalogClient.
type CatalogOption func(*CatalogClient)

// WithBaseURL overrides the catalog root URL.
func WithBaseURL(u string) CatalogOption {
	return func(c *CatalogClient) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets the http.Client used for catalog calls.
func WithHTTPClient(h *http.Client) CatalogOption {
	return func(c *CatalogClient) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) CatalogOption {
	return func(c *CatalogClient) { c.ua = ua }
}

// WithTimeout bounds every catalog call. Zero means no client-side timeout.
// It applies on top of any client given with WithHTTPClient, whatever the order.
func WithTimeout(d time.Duration) CatalogOption {
	return func(c *CatalogClient) { c.timeout = d }
}

// NewCatalogClient creates a client for the catalog at DefaultCatalogURL unless overridden.
func NewCatalogClient(opts ...CatalogOption) *CatalogClient {
	c := &CatalogClient{
		baseURL: DefaultCatalogURL,
		ua:      defaultUserAgent,
		http:    &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		h := *c.http
		h.Timeout = c.timeout
		c.http = &h
	}
	return c
}

// SearchByTerm returns the recipes whose names match term. An empty term is
// passed through and yields the catalog's default set. A null meals field is a
// no-results outcome, not an error.
func (c *CatalogClient) SearchByTerm(ctx context.Context, term string) (model.SearchResult, error) {
	resp, err := c.get(ctx, "search.php", url.Values{"s": {term}})
	if err != nil {
		return model.SearchResult{}, err
	}

	summaries := make([]model.RecipeSummary, 0, len(resp.Meals))
	for _, record := range resp.Meals {
		summaries = append(summaries, model.NewRecipeSummary(record))
	}
	return model.Found(summaries), nil
}

// LookupByID returns the full detail of one recipe.
func (c *CatalogClient) LookupByID(ctx context.Context, id string) (*model.RecipeDetail, error) {
	resp, err := c.get(ctx, "lookup.php", url.Values{"i": {id}})
	if err != nil {
		return nil, err
	}
	if len(resp.Meals) == 0 || resp.Meals[0] == nil {
		return nil, fmt.Errorf("lookup %q: %w", id, ErrRecipeNotFound)
	}
	return model.NewRecipeDetail(resp.Meals[0]), nil
}

func (c *CatalogClient) get(ctx context.Context, endpoint string, query url.Values) (*mealsResponse, error) {
	reqURL := c.baseURL + "/" + endpoint + "?" + query.Encode()

	// The shared call outlives any single caller; each caller still stops
	// waiting when its own ctx ends.
	ch := c.inflight.DoChan(reqURL, func() (interface{}, error) {
		return c.fetch(context.WithoutCancel(ctx), reqURL)
	})
	select {
	case <-ctx.Done():
		return nil, &NetworkError{URL: reqURL, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*mealsResponse), nil
	}
}

func (c *CatalogClient) fetch(ctx context.Context, reqURL string) (*mealsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.ua)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 1<<16))
		return nil, &NetworkError{URL: reqURL, StatusCode: res.StatusCode, Err: errors.New(res.Status)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}

	var out mealsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ParseError{URL: reqURL, Err: err}
	}
	return &out, nil
}
