package tui

import (
	"fmt"
	"image"
	"strings"

	"fetchbites/cache"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2/simplelru"
)

const upperHalfBlock = "▀"

type thumbKey struct {
	img        *cache.Image
	cols, rows int
}

// ThumbnailRenderer draws images with half-block characters, two pixel rows
// per terminal row. Rendered strings are memoized per image and size; the
// renderer is only used from the bubbletea update loop.
type ThumbnailRenderer struct {
	rendered *lru.LRU[thumbKey, string]
}

func NewThumbnailRenderer(size int) *ThumbnailRenderer {
	if size <= 0 {
		size = 64
	}
	rendered, _ := lru.NewLRU[thumbKey, string](size, nil)
	return &ThumbnailRenderer{rendered: rendered}
}

// Render fits img into cols x rows cells, keeping its aspect ratio.
func (tr *ThumbnailRenderer) Render(img *cache.Image, cols, rows int) string {
	if img == nil || img.Image == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	key := thumbKey{img: img, cols: cols, rows: rows}
	if s, ok := tr.rendered.Get(key); ok {
		return s
	}
	s := renderHalfBlocks(img.Image, cols, rows)
	tr.rendered.Add(key, s)
	return s
}

// fitSize scales w x h down (or up) to fit within maxW x maxH.
func fitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	sw := float64(maxW) / float64(w)
	sh := float64(maxH) / float64(h)
	scale := min(sw, sh)
	return max(int(float64(w)*scale), 1), max(int(float64(h)*scale), 1)
}

func renderHalfBlocks(img image.Image, cols, rows int) string {
	b := img.Bounds()
	tw, th := fitSize(b.Dx(), b.Dy(), cols, rows*2)
	if tw == 0 {
		return ""
	}

	sample := func(x, y int) lipgloss.Color {
		sx := b.Min.X + x*b.Dx()/tw
		sy := b.Min.Y + y*b.Dy()/th
		r, g, bl, _ := img.At(sx, sy).RGBA()
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8))
	}

	lines := make([]string, 0, (th+1)/2)
	for y := 0; y < th; y += 2 {
		var sb strings.Builder
		for x := 0; x < tw; x++ {
			style := lipgloss.NewStyle().Foreground(sample(x, y))
			if y+1 < th {
				style = style.Background(sample(x, y+1))
			}
			sb.WriteString(style.Render(upperHalfBlock))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
