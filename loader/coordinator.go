// Package loader resolves image locators for a single display slot: cache
// first, then one network fetch, with stale results suppressed when the slot
// moves on to another locator.
package loader

import (
	"context"
	"sync"

	"fetchbites/cache"
	"fetchbites/fetcher"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// ErrCancelled marks work whose result was dropped because the coordinator
// moved on to another locator or was closed.
var ErrCancelled = errors.New("image load cancelled")

// Store is the cache a Coordinator reads from and writes to. *cache.Store
// satisfies it.
type Store interface {
	Get(key string) (*cache.Image, bool)
	Insert(key string, img *cache.Image)
}

// Listener receives every committed state in commit order. It runs on the
// goroutine that committed the state and must not call back into the
// Coordinator; hand the state off (for example to a channel) instead.
type Listener func(State)

type Option func(*Coordinator)

func WithListener(l Listener) Option {
	return func(c *Coordinator) {
		c.listener = l
	}
}

func WithLogger(entry *logrus.Entry) Option {
	return func(c *Coordinator) {
		if entry != nil {
			c.log = entry
		}
	}
}

// Coordinator loads one locator at a time for one consumer. Each request
// bumps a generation counter; a resolution only commits its result while its
// generation is still current, so a slow, superseded request can never
// overwrite a newer one. Resolutions run one after another: a new one waits
// for its predecessor to exit before fetching.
type Coordinator struct {
	store   Store
	fetcher fetcher.ImageFetcher
	decoder fetcher.Decoder
	log     *logrus.Entry

	mu         sync.Mutex
	generation uint64
	locator    string
	state      State
	cancel     context.CancelFunc
	done       chan struct{}
	closed     bool
	listener   Listener

	// notifyMu is taken before mu is released so listeners see states in
	// the order they were committed.
	notifyMu sync.Mutex
}

func New(store Store, f fetcher.ImageFetcher, d fetcher.Decoder, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:   store,
		fetcher: f,
		decoder: d,
		log:     logrus.WithField("component", "loader"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestLoad starts resolving locator unless it is already the tracked
// locator. Any outstanding resolution is cancelled. An empty locator behaves
// like Cancel.
func (c *Coordinator) RequestLoad(locator string) {
	if locator == "" {
		c.Cancel()
		return
	}

	c.mu.Lock()
	if c.closed || c.locator == locator {
		c.mu.Unlock()
		return
	}

	c.stopLocked()
	c.generation++
	gen := c.generation
	c.locator = locator

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	prev := c.done
	done := make(chan struct{})
	c.done = done

	c.state = State{Phase: Loading, Locator: locator}
	go c.resolve(ctx, cancel, gen, locator, prev, done)
	c.publishAndUnlock()
}

// Cancel abandons any outstanding resolution, forgets the tracked locator and
// returns to Idle. It is a no-op when there is nothing to cancel.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	c.stopLocked()
	c.generation++
	c.locator = ""
	if c.state.isZero() {
		c.mu.Unlock()
		return
	}
	c.state = State{}
	c.publishAndUnlock()
}

// Close cancels outstanding work and detaches the listener. Later calls to
// RequestLoad are ignored.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.closed = true
	c.generation++
	c.locator = ""
	c.state = State{}
	c.listener = nil
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until no resolution is outstanding or ctx is done.
func (c *Coordinator) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stopLocked cancels the outstanding resolution's context. c.done is kept so
// the next resolution can wait for it.
func (c *Coordinator) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// publishAndUnlock hands the current state to the listener. It must be called
// with c.mu held and releases it.
func (c *Coordinator) publishAndUnlock() {
	st, l := c.state, c.listener
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	if l != nil {
		l(st)
	}
}

func (c *Coordinator) resolve(ctx context.Context, cancel context.CancelFunc, gen uint64, locator string, prev <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer cancel()

	log := c.log.WithField("locator", locator)

	if prev != nil {
		<-prev
	}
	if ctx.Err() != nil {
		log.Debug("load superseded before it started")
		return
	}

	if img, ok := c.store.Get(locator); ok {
		c.finish(log, gen, State{Phase: Loaded, Locator: locator, Image: img})
		return
	}

	data, err := c.fetcher.Fetch(ctx, locator)
	if err != nil {
		c.finish(log, gen, State{Phase: Idle, Locator: locator, Err: err})
		return
	}

	img, err := c.decoder.Decode(data)
	if err != nil {
		c.finish(log, gen, State{Phase: Idle, Locator: locator, Err: err})
		return
	}

	c.store.Insert(locator, img)
	c.finish(log, gen, State{Phase: Loaded, Locator: locator, Image: img})
}

func (c *Coordinator) finish(log *logrus.Entry, gen uint64, st State) {
	if err := c.commit(gen, st); err != nil {
		log.WithError(err).Debug("dropped image load result")
		return
	}
	if st.Err != nil {
		log.WithError(st.Err).Debug("image load failed")
	}
}

// commit installs st if gen is still the current generation.
func (c *Coordinator) commit(gen uint64, st State) error {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return errors.Wrapf(ErrCancelled, "generation %d", gen)
	}
	c.state = st
	c.publishAndUnlock()
	return nil
}
