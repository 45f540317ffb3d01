package tui

import (
	"fetchbites/fetcher"
	"fetchbites/loader"
	"fetchbites/recipes"

	"github.com/sirupsen/logrus"
)

// SlotManager owns one loader per visible recipe row. Rows that scroll into
// view get a loader for their small photo; rows that leave it have theirs
// closed, which abandons any fetch still running for them.
type SlotManager struct {
	store   loader.Store
	fetcher fetcher.ImageFetcher
	decoder fetcher.Decoder
	notify  func(slotID string)

	slots map[string]*loader.Coordinator
}

func NewSlotManager(store loader.Store, f fetcher.ImageFetcher, d fetcher.Decoder, notify func(slotID string)) *SlotManager {
	return &SlotManager{
		store:   store,
		fetcher: f,
		decoder: d,
		notify:  notify,
		slots:   make(map[string]*loader.Coordinator),
	}
}

// New returns a standalone loader wired to the same store and notifier.
func (sm *SlotManager) New(slotID string) *loader.Coordinator {
	return loader.New(sm.store, sm.fetcher, sm.decoder,
		loader.WithLogger(logrus.WithFields(logrus.Fields{"component": "loader", "slot": slotID})),
		loader.WithListener(func(loader.State) {
			if sm.notify != nil {
				sm.notify(slotID)
			}
		}),
	)
}

// Sync makes the set of live loaders match visible.
func (sm *SlotManager) Sync(visible []recipes.Recipe) {
	keep := make(map[string]bool, len(visible))
	for _, r := range visible {
		keep[r.ID] = true
		c, ok := sm.slots[r.ID]
		if !ok {
			c = sm.New(r.ID)
			sm.slots[r.ID] = c
		}
		c.RequestLoad(r.PhotoURLSmall)
	}

	for id, c := range sm.slots {
		if !keep[id] {
			c.Close()
			delete(sm.slots, id)
		}
	}
}

func (sm *SlotManager) State(slotID string) (loader.State, bool) {
	c, ok := sm.slots[slotID]
	if !ok {
		return loader.State{}, false
	}
	return c.State(), true
}

func (sm *SlotManager) Len() int {
	return len(sm.slots)
}

// AnyLoading reports whether a visible slot is still waiting on a fetch.
func (sm *SlotManager) AnyLoading() bool {
	for _, c := range sm.slots {
		if c.State().IsLoading() {
			return true
		}
	}
	return false
}

func (sm *SlotManager) CloseAll() {
	for id, c := range sm.slots {
		c.Close()
		delete(sm.slots, id)
	}
}
