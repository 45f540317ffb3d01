package recipes

import (
	"context"
	"encoding/json"
	"os"

	"fetchbites/fetcher"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// EndpointEnv overrides the configured feed when set.
const EndpointEnv = "USE_ENDPOINT"

// ErrMalformedData is returned when the feed body is not a valid recipe list.
var ErrMalformedData = errors.New("malformed recipe data")

type Repository interface {
	FetchRecipes(ctx context.Context) ([]Recipe, error)
}

type httpRepository struct {
	client   fetcher.RecipeClient
	endpoint fetcher.Endpoint
}

func NewRepository(client fetcher.RecipeClient, endpoint fetcher.Endpoint) Repository {
	return &httpRepository{
		client:   client,
		endpoint: endpoint,
	}
}

// ResolveEndpoint picks the feed from USE_ENDPOINT, falling back to
// configured.
func ResolveEndpoint(configured string) fetcher.Endpoint {
	if v, ok := os.LookupEnv(EndpointEnv); ok && v != "" {
		return fetcher.EndpointFromString(v)
	}
	return fetcher.EndpointFromString(configured)
}

func (r *httpRepository) FetchRecipes(ctx context.Context) ([]Recipe, error) {
	data, err := r.client.Fetch(ctx, r.endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s feed", r.endpoint)
	}

	recipes, err := Decode(data)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"endpoint": r.endpoint,
		"count":    len(recipes),
	}).Debug("loaded recipes")

	return recipes, nil
}

// Decode parses a feed body. Every recipe must carry a uuid, a name and a
// cuisine; anything else is reported as ErrMalformedData.
func Decode(data []byte) ([]Recipe, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrapf(ErrMalformedData, "decode recipes: %v", err)
	}
	if resp.Recipes == nil {
		return nil, errors.Wrap(ErrMalformedData, "missing recipes list")
	}
	for i, r := range resp.Recipes {
		if field := r.missingField(); field != "" {
			return nil, errors.Wrapf(ErrMalformedData, "recipe %d: missing %s", i, field)
		}
	}
	return resp.Recipes, nil
}

// IsMalformed reports whether err came from an unreadable feed body.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedData)
}
