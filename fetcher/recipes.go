package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

const recipesBaseURL = "https://d3jbb8n5wk0qxi.cloudfront.net"

// emptyRecipes is served in place of a 204 response body.
var emptyRecipes = []byte(`{ "recipes": [] }`)

// Endpoint selects which recipe feed to read.
type Endpoint int

const (
	EndpointRecipes Endpoint = iota
	EndpointMalformed
	EndpointEmpty
)

func (e Endpoint) String() string {
	switch e {
	case EndpointMalformed:
		return "malformed"
	case EndpointEmpty:
		return "empty"
	default:
		return "recipes"
	}
}

// Path returns the feed path relative to the base URL.
func (e Endpoint) Path() string {
	switch e {
	case EndpointMalformed:
		return "/recipes-malformed.json"
	case EndpointEmpty:
		return "/recipes-empty.json"
	default:
		return "/recipes.json"
	}
}

// EndpointFromString maps "malformed" and "empty" to their feeds; anything
// else selects the regular feed.
func EndpointFromString(s string) Endpoint {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "malformed":
		return EndpointMalformed
	case "empty":
		return EndpointEmpty
	default:
		return EndpointRecipes
	}
}

// RecipeClient reads raw recipe feeds.
type RecipeClient interface {
	Fetch(ctx context.Context, endpoint Endpoint) ([]byte, error)
}

type recipeClient struct {
	client  *http.Client
	baseURL string
}

// NewRecipeClient returns a client for the feeds under baseURL. An empty
// baseURL selects the public recipe feed host.
func NewRecipeClient(baseURL string, timeout time.Duration) RecipeClient {
	if baseURL == "" {
		baseURL = recipesBaseURL
	}
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &recipeClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (rc *recipeClient) Fetch(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	feedURL := rc.baseURL + endpoint.Path()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &NetworkError{Locator: feedURL, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Locator: feedURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		logrus.WithField("endpoint", endpoint).Debug("recipe feed returned no content")
		return emptyRecipes, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{
			Locator:    feedURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("recipe feed returned status: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Locator: feedURL, Err: errors.Wrap(err, "read body")}
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bytes":    len(body),
	}).Debug("fetched recipe feed")

	return body, nil
}
