// Package spoonacular is a client for the recipe search and recipe
// information endpoints of a Spoonacular-compatible API.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"recipebox/recipe"
)

const DefaultBaseURL = "https://api.spoonacular.com/recipes"

// Ranking selects how the API orders ingredient matches.
type Ranking int

const (
	MaximizeUsed    Ranking = 1
	MinimizeMissing Ranking = 2
)

func (r Ranking) IsValid() bool {
	return r == MaximizeUsed || r == MinimizeMissing
}

type SearchOptions struct {
	Count        int
	Ranking      Ranking
	IgnorePantry bool
}

// DefaultSearchOptions mirrors what the app has always asked for.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Count: 10, Ranking: MaximizeUsed, IgnorePantry: true}
}

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient doer
}

type ClientOpts struct {
	BaseURL    string
	APIKey     string
	HTTPClient doer
}

func NewClient(opts ClientOpts) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("missing API key")
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: opts.HTTPClient,
	}, nil
}

// SearchByIngredients finds recipes using the comma-separated ingredients.
// The string is sent as given; only a blank string is rejected, before any
// request is made.
func (c *Client) SearchByIngredients(ctx context.Context, ingredients string, opts SearchOptions) ([]recipe.Summary, error) {
	if strings.TrimSpace(ingredients) == "" {
		return nil, recipe.ErrEmptyQuery
	}
	if opts.Count <= 0 {
		opts.Count = DefaultSearchOptions().Count
	}
	if !opts.Ranking.IsValid() {
		opts.Ranking = MaximizeUsed
	}

	params := url.Values{}
	params.Set("ingredients", ingredients)
	params.Set("number", strconv.Itoa(opts.Count))
	params.Set("ranking", strconv.Itoa(int(opts.Ranking)))
	params.Set("ignorePantry", strconv.FormatBool(opts.IgnorePantry))

	var out []recipe.Summary
	if err := c.get(ctx, "search", "/findByIngredients", params, &out); err != nil {
		slog.Error("RECIPE_API: Error searching recipes", "ingredients", ingredients, "error", err)
		return nil, err
	}
	if out == nil {
		out = []recipe.Summary{}
	}
	return out, nil
}

// GetDetails fetches the full recipe. Every call goes to the API.
func (c *Client) GetDetails(ctx context.Context, id int) (*recipe.Detail, error) {
	var out recipe.Detail
	if err := c.get(ctx, "details", fmt.Sprintf("/%d/information", id), url.Values{}, &out); err != nil {
		slog.Error("RECIPE_API: Error fetching recipe details", "id", id, "error", err)
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &recipe.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &recipe.NetworkError{Op: op, Err: redactKey(err, c.apiKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &recipe.NetworkError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &recipe.NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s: %s", resp.Status, snippet(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &recipe.NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// redactKey keeps the API key out of transport errors that echo the request URL.
func redactKey(err error, key string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: strings.ReplaceAll(ue.URL, key, "REDACTED"), Err: ue.Err}
	}
	return err
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:197] + "..."
	}
	return s
}
