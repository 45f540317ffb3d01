package cache

import (
	"fmt"
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage returns an image whose cost is w*h*4 bytes.
func testImage(w, h int) *Image {
	return NewImage(image.NewRGBA(image.Rect(0, 0, w, h)), "png", w*h)
}

func TestNewStoreDefaults(t *testing.T) {
	tests := []struct {
		name       string
		countLimit int
		costLimit  int64
		wantCount  int
		wantCost   int64
	}{
		{"zero limits", 0, 0, DefaultCountLimit, DefaultCostLimit},
		{"negative limits", -1, -5, DefaultCountLimit, DefaultCostLimit},
		{"explicit limits", 8, 1024, 8, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(tt.countLimit, tt.costLimit)
			count, cost := s.Limits()
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantCost, cost)
		})
	}
}

func TestNewImageCost(t *testing.T) {
	img := testImage(10, 20)
	assert.Equal(t, int64(800), img.Cost)
	assert.Equal(t, 10, img.Width())
	assert.Equal(t, 20, img.Height())

	var empty *Image
	assert.Zero(t, empty.Width())
	assert.Zero(t, NewImage(nil, "", 0).Cost)
}

func TestStoreInsertAndGet(t *testing.T) {
	s := NewStore(0, 0)
	i1 := testImage(4, 4)

	s.Insert("u1", i1)

	got, ok := s.Get("u1")
	require.True(t, ok)
	assert.Same(t, i1, got)

	_, ok = s.Get("missing")
	assert.False(t, ok)

	stats := s.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Inserts)
}

func TestStoreInsertNilIsIgnored(t *testing.T) {
	s := NewStore(0, 0)
	s.Insert("u1", nil)
	assert.Zero(t, s.Len())
}

func TestStoreReplaceUpdatesCost(t *testing.T) {
	s := NewStore(10, 10_000)
	s.Insert("u1", testImage(10, 10))
	assert.Equal(t, int64(400), s.Cost())

	i2 := testImage(5, 5)
	s.Insert("u1", i2)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, int64(100), s.Cost())

	got, ok := s.Get("u1")
	require.True(t, ok)
	assert.Same(t, i2, got)
}

func TestStoreCountEvictionIsLRU(t *testing.T) {
	s := NewStore(3, DefaultCostLimit)
	for i := 0; i < 3; i++ {
		s.Insert(fmt.Sprintf("u%d", i), testImage(1, 1))
	}

	// touch u0 so u1 becomes the oldest
	_, ok := s.Get("u0")
	require.True(t, ok)

	s.Insert("u3", testImage(1, 1))

	assert.Equal(t, 3, s.Len())
	_, ok = s.Get("u1")
	assert.False(t, ok, "least recently used entry should be evicted")
	for _, key := range []string{"u0", "u2", "u3"} {
		_, ok := s.Get(key)
		assert.True(t, ok, key)
	}
	assert.Equal(t, int64(1), s.Stats().Evictions)
}

func TestStoreCostEviction(t *testing.T) {
	// each 10x10 image costs 400 bytes
	s := NewStore(100, 1000)
	s.Insert("a", testImage(10, 10))
	s.Insert("b", testImage(10, 10))
	assert.Equal(t, int64(800), s.Cost())

	s.Insert("c", testImage(10, 10))
	assert.Equal(t, int64(800), s.Cost())
	assert.Equal(t, 2, s.Len())

	_, ok := s.Get("a")
	assert.False(t, ok)
	_, ok = s.Get("c")
	assert.True(t, ok)
}

func TestStoreReplaceGrowingEvictsOthers(t *testing.T) {
	s := NewStore(100, 1000)
	s.Insert("a", testImage(10, 10)) // 400
	s.Insert("b", testImage(10, 10)) // 400

	// b grows to 900, a must go
	s.Insert("b", NewImage(image.NewRGBA(image.Rect(0, 0, 15, 15)), "png", 0))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, int64(900), s.Cost())
	_, ok := s.Get("b")
	assert.True(t, ok)
}

func TestStoreRejectsOversizedImage(t *testing.T) {
	s := NewStore(10, 100)
	s.Insert("small", testImage(2, 2))
	s.Insert("big", testImage(10, 10))

	_, ok := s.Get("big")
	assert.False(t, ok)
	_, ok = s.Get("small")
	assert.True(t, ok, "rejecting an oversized image must not evict others")
	assert.Equal(t, int64(1), s.Stats().Rejected)

	// an oversized replacement drops the previous entry for that key
	s.Insert("small", testImage(10, 10))
	_, ok = s.Get("small")
	assert.False(t, ok)
	assert.Zero(t, s.Cost())
}

func TestStoreBoundsHoldAfterAnyInserts(t *testing.T) {
	const (
		countLimit       = 7
		costLimit  int64 = 5000
	)
	s := NewStore(countLimit, costLimit)

	for i := 0; i < 200; i++ {
		side := 1 + (i*13)%30
		s.Insert(fmt.Sprintf("u%d", i%23), testImage(side, side))

		require.LessOrEqual(t, s.Len(), countLimit)
		require.LessOrEqual(t, s.Cost(), costLimit)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore(0, 0)
	keys := []string{"key1", "key2", "key3"}
	for _, k := range keys {
		s.Insert(k, testImage(2, 2))
	}

	s.Clear()
	s.Clear()

	for _, k := range keys {
		_, ok := s.Get(k)
		assert.False(t, ok, k)
	}
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Cost())
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(50, 50_000)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("u%d", (w*31+i)%80)
				switch i % 10 {
				case 0:
					if w == 0 {
						s.Clear()
					}
				case 1, 2, 3:
					s.Insert(key, testImage(1+i%20, 1+i%20))
				default:
					s.Get(key)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 50)
	assert.LessOrEqual(t, s.Cost(), int64(50_000))
}
