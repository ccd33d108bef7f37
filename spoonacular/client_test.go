package spoonacular_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"recipebox/recipe"
	"recipebox/spoonacular"

	should "github.com/stretchr/testify/assert"
	must "github.com/stretchr/testify/require"
)

type mockDoer struct {
	calls  int
	last   *http.Request
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	m.last = req
	return m.doFunc(req)
}

func jsonResponse(status int, body string) func(req *http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	}
}

func newClient(t *testing.T, doer *mockDoer) *spoonacular.Client {
	t.Helper()
	client, err := spoonacular.NewClient(spoonacular.ClientOpts{
		BaseURL:    "https://api.example.com/recipes/",
		APIKey:     "secret-key",
		HTTPClient: doer,
	})
	must.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	_, err := spoonacular.NewClient(spoonacular.ClientOpts{})
	should.Error(t, err, "expected error without an API key")

	client, err := spoonacular.NewClient(spoonacular.ClientOpts{APIKey: "k"})
	must.NoError(t, err)
	must.NotNil(t, client)
}

func TestSearchByIngredients(t *testing.T) {
	t.Run("builds the query and decodes summaries", func(t *testing.T) {
		doer := &mockDoer{doFunc: jsonResponse(http.StatusOK,
			`[{"id":1,"title":"Chicken Rice Bowl","image":"https://img/1.jpg","usedIngredientCount":2,"missedIngredientCount":0}]`)}
		client := newClient(t, doer)

		got, err := client.SearchByIngredients(context.Background(), "chicken, rice", spoonacular.SearchOptions{
			Count: 5, Ranking: spoonacular.MinimizeMissing, IgnorePantry: false,
		})
		must.NoError(t, err)
		must.Len(t, got, 1)
		should.Equal(t, 1, got[0].ID)
		should.Equal(t, "Chicken Rice Bowl", got[0].Title)
		should.True(t, got[0].MissesNothing())

		must.Equal(t, 1, doer.calls)
		should.Equal(t, http.MethodGet, doer.last.Method)
		should.Equal(t, "/recipes/findByIngredients", doer.last.URL.Path)
		q := doer.last.URL.Query()
		should.Equal(t, url.Values{
			"ingredients":  {"chicken, rice"},
			"number":       {"5"},
			"ranking":      {"2"},
			"ignorePantry": {"false"},
			"apiKey":       {"secret-key"},
		}, q)
	})

	t.Run("applies defaults for unset options", func(t *testing.T) {
		doer := &mockDoer{doFunc: jsonResponse(http.StatusOK, `[]`)}
		client := newClient(t, doer)

		got, err := client.SearchByIngredients(context.Background(), "eggs", spoonacular.SearchOptions{})
		must.NoError(t, err)
		should.NotNil(t, got)
		should.Empty(t, got)
		should.Equal(t, "10", doer.last.URL.Query().Get("number"))
		should.Equal(t, "1", doer.last.URL.Query().Get("ranking"))
	})

	t.Run("null body decodes to empty list", func(t *testing.T) {
		client := newClient(t, &mockDoer{doFunc: jsonResponse(http.StatusOK, `null`)})
		got, err := client.SearchByIngredients(context.Background(), "eggs", spoonacular.DefaultSearchOptions())
		must.NoError(t, err)
		should.Equal(t, []recipe.Summary{}, got)
	})

	blanks := []string{"", " ", "\t\n", "   "}
	for _, blank := range blanks {
		t.Run("blank input never reaches the API "+url.QueryEscape(blank), func(t *testing.T) {
			doer := &mockDoer{doFunc: jsonResponse(http.StatusOK, `[]`)}
			client := newClient(t, doer)

			_, err := client.SearchByIngredients(context.Background(), blank, spoonacular.DefaultSearchOptions())
			should.ErrorIs(t, err, recipe.ErrEmptyQuery)
			should.Zero(t, doer.calls)
		})
	}

	tests := []struct {
		name       string
		doFunc     func(req *http.Request) (*http.Response, error)
		wantStatus int
	}{
		{
			name:       "non-2xx status",
			doFunc:     jsonResponse(http.StatusPaymentRequired, `{"message":"quota exceeded"}`),
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name: "transport error",
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("network error")
			},
		},
		{
			name:   "malformed body",
			doFunc: jsonResponse(http.StatusOK, `{not json`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, &mockDoer{doFunc: tt.doFunc})
			_, err := client.SearchByIngredients(context.Background(), "chicken", spoonacular.DefaultSearchOptions())

			var netErr *recipe.NetworkError
			must.True(t, errors.As(err, &netErr), "expected NetworkError, got %v", err)
			should.Equal(t, "search", netErr.Op)
			should.Equal(t, tt.wantStatus, netErr.StatusCode)
		})
	}
}

func TestGetDetails(t *testing.T) {
	t.Run("decodes detail", func(t *testing.T) {
		doer := &mockDoer{doFunc: jsonResponse(http.StatusOK, `{
			"id": 716429,
			"title": "Pasta with Garlic",
			"image": "https://img/716429.jpg",
			"servings": 2,
			"readyInMinutes": 45,
			"aggregateLikes": 209,
			"extendedIngredients": [{"id": 1001, "original": "1 tbsp butter"}],
			"instructions": "<ol><li>Boil pasta.</li></ol>",
			"analyzedInstructions": [{"name": "", "steps": [{"number": 1, "step": "Boil pasta."}]}]
		}`)}
		client := newClient(t, doer)

		got, err := client.GetDetails(context.Background(), 716429)
		must.NoError(t, err)
		should.Equal(t, "/recipes/716429/information", doer.last.URL.Path)
		should.Equal(t, "secret-key", doer.last.URL.Query().Get("apiKey"))
		should.Equal(t, 716429, got.ID)
		should.Equal(t, 45, got.ReadyInMinutes)
		should.Equal(t, []recipe.Ingredient{{ID: 1001, Original: "1 tbsp butter"}}, got.ExtendedIngredients)
		should.Equal(t, []recipe.Step{{Number: 1, Step: "Boil pasta."}}, got.Steps())
	})

	t.Run("not found", func(t *testing.T) {
		client := newClient(t, &mockDoer{doFunc: jsonResponse(http.StatusNotFound, `{"status":"failure"}`)})
		got, err := client.GetDetails(context.Background(), 404)
		should.Nil(t, got)

		var netErr *recipe.NetworkError
		must.True(t, errors.As(err, &netErr))
		should.Equal(t, http.StatusNotFound, netErr.StatusCode)
	})

	t.Run("repeated calls are not cached", func(t *testing.T) {
		doer := &mockDoer{doFunc: jsonResponse(http.StatusOK, `{"id":1,"title":"Toast"}`)}
		client := newClient(t, doer)
		for i := 0; i < 3; i++ {
			_, err := client.GetDetails(context.Background(), 1)
			must.NoError(t, err)
		}
		should.Equal(t, 3, doer.calls)
	})
}

func TestClient_RedactsKeyFromTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := spoonacular.NewClient(spoonacular.ClientOpts{
		BaseURL:    server.URL,
		APIKey:     "secret-key",
		HTTPClient: server.Client(),
	})
	must.NoError(t, err)

	_, err = client.GetDetails(context.Background(), 1)
	must.Error(t, err)
	should.NotContains(t, err.Error(), "secret-key")
	should.Contains(t, err.Error(), "REDACTED")
}

func TestClient_AgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "secret-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"title":"Chicken Rice Bowl","image":"https://img/1.jpg"}]`)) // nolint: errcheck
	}))
	defer server.Close()

	client, err := spoonacular.NewClient(spoonacular.ClientOpts{
		BaseURL:    server.URL,
		APIKey:     "secret-key",
		HTTPClient: server.Client(),
	})
	must.NoError(t, err)

	got, err := client.SearchByIngredients(context.Background(), "chicken,rice", spoonacular.DefaultSearchOptions())
	must.NoError(t, err)
	should.Equal(t, []recipe.Summary{{ID: 1, Title: "Chicken Rice Bowl", Image: "https://img/1.jpg"}}, got)
}
