package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Endpoint
		path string
	}{
		{"", EndpointRecipes, "/recipes.json"},
		{"recipes", EndpointRecipes, "/recipes.json"},
		{"malformed", EndpointMalformed, "/recipes-malformed.json"},
		{" Empty ", EndpointEmpty, "/recipes-empty.json"},
		{"whatever", EndpointRecipes, "/recipes.json"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := EndpointFromString(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.path, got.Path())
		})
	}
	assert.Equal(t, "malformed", EndpointMalformed.String())
}

func TestRecipeClientFetch(t *testing.T) {
	const body = `{"recipes": [{"uuid": "1", "name": "Apam Balik", "cuisine": "Malaysian"}]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes.json":
			_, _ = w.Write([]byte(body))
		case "/recipes-empty.json":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewRecipeClient(srv.URL+"/", time.Second)

	t.Run("returns body", func(t *testing.T) {
		data, err := client.Fetch(context.Background(), EndpointRecipes)
		require.NoError(t, err)
		assert.JSONEq(t, body, string(data))
	})

	t.Run("no content becomes empty list", func(t *testing.T) {
		data, err := client.Fetch(context.Background(), EndpointEmpty)
		require.NoError(t, err)
		assert.JSONEq(t, `{"recipes": []}`, string(data))
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.Fetch(context.Background(), EndpointMalformed)
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
		assert.Equal(t, srv.URL+"/recipes-malformed.json", netErr.Locator)
	})
}
