package tui

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"fetchbites/recipes"

	"github.com/stretchr/testify/require"
)

type pngFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	png   []byte
}

func newPNGFetcher(t *testing.T) *pngFetcher {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &pngFetcher{calls: make(map[string]int), png: buf.Bytes()}
}

func (f *pngFetcher) Fetch(_ context.Context, locator string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[locator]++
	return f.png, nil
}

func (f *pngFetcher) callCount(locator string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[locator]
}

type stubRepository struct {
	recipes []recipes.Recipe
	err     error
}

func (s stubRepository) FetchRecipes(context.Context) ([]recipes.Recipe, error) {
	return s.recipes, s.err
}
