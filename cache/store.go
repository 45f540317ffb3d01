package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

const (
	DefaultCountLimit       = 100
	DefaultCostLimit  int64 = 50 * 1024 * 1024 // 50MB
)

// Store is a bounded, least-recently-used image cache. It is safe for
// concurrent use; Get, Insert and Clear never block on I/O.
type Store struct {
	mu         sync.Mutex
	entries    *lru.LRU[string, *Image]
	countLimit int
	costLimit  int64
	cost       int64

	hits      atomic.Int64
	misses    atomic.Int64
	inserts   atomic.Int64
	evictions atomic.Int64
	rejected  atomic.Int64
}

// Stats is a point-in-time view of store activity.
type Stats struct {
	Entries   int
	Cost      int64
	Hits      int64
	Misses    int64
	Inserts   int64
	Evictions int64
	Rejected  int64
}

// NewStore creates a store holding at most countLimit entries and costLimit
// decoded bytes. Non-positive limits fall back to DefaultCountLimit and
// DefaultCostLimit.
func NewStore(countLimit int, costLimit int64) *Store {
	if countLimit <= 0 {
		countLimit = DefaultCountLimit
	}
	if costLimit <= 0 {
		costLimit = DefaultCostLimit
	}

	s := &Store{
		countLimit: countLimit,
		costLimit:  costLimit,
	}
	// NewLRU only fails for a non-positive size.
	s.entries, _ = lru.NewLRU[string, *Image](countLimit, s.onEvict)
	return s
}

// onEvict runs under s.mu for every entry that leaves the LRU.
func (s *Store) onEvict(_ string, img *Image) {
	s.cost -= img.Cost
}

// Insert stores img under key, replacing any previous entry, and evicts the
// least recently used entries until both limits hold. An image that alone
// exceeds the cost limit is not stored.
func (s *Store) Insert(key string, img *Image) {
	if img == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if img.Cost > s.costLimit {
		s.entries.Remove(key)
		s.rejected.Inc()
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"cost":  img.Cost,
			"limit": s.costLimit,
		}).Debug("image exceeds cache cost limit, not cached")
		return
	}

	if old, ok := s.entries.Peek(key); ok {
		// Add updates in place without firing onEvict.
		s.cost -= old.Cost
		s.entries.Add(key, img)
		s.cost += img.Cost
		s.evictFor(key)
		s.inserts.Inc()
		return
	}

	s.cost += img.Cost
	s.evictFor(key)
	if s.entries.Add(key, img) {
		s.evictions.Inc()
	}
	s.inserts.Inc()
}

// evictFor drops the oldest entries other than keep until the cost budget
// holds. The caller has already accounted for keep's cost.
func (s *Store) evictFor(keep string) {
	for s.cost > s.costLimit {
		oldest, _, ok := s.entries.GetOldest()
		if !ok || oldest == keep {
			return
		}
		s.entries.RemoveOldest()
		s.evictions.Inc()
		logrus.WithField("key", oldest).Debug("evicted image from cache")
	}
}

// Get returns the image stored under key and marks it as recently used.
func (s *Store) Get(key string) (*Image, bool) {
	s.mu.Lock()
	img, ok := s.entries.Get(key)
	s.mu.Unlock()

	if ok {
		s.hits.Inc()
	} else {
		s.misses.Inc()
	}
	return img, ok
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries.Purge()
	s.cost = 0
	s.mu.Unlock()
}

// Len returns the number of cached images.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}

// Cost returns the total cost of the cached images.
func (s *Store) Cost() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cost
}

// Limits returns the configured count and cost limits.
func (s *Store) Limits() (int, int64) {
	return s.countLimit, s.costLimit
}

// Stats returns a snapshot of the store's size and activity counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	entries, cost := s.entries.Len(), s.cost
	s.mu.Unlock()

	return Stats{
		Entries:   entries,
		Cost:      cost,
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Inserts:   s.inserts.Load(),
		Evictions: s.evictions.Load(),
		Rejected:  s.rejected.Load(),
	}
}
