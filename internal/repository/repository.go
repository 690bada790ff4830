package repository

import (
	"context"
	"fmt"
	"sync"

	"biowearth/internal/model"
	"biowearth/internal/store"

	"github.com/rs/zerolog/log"
)

// Observer is called after a collection's snapshot has been replaced. It runs on
// the delivering goroutine: it must not write through the adapter synchronously.
type Observer func(snap *Snapshot)

// Repository mirrors every collection of the store in memory. It is the only
// subscriber of adapter callbacks; each callback replaces the whole collection.
type Repository struct {
	adapter store.Adapter

	mu        sync.RWMutex
	raw       map[model.Collection][]store.Document
	snap      *Snapshot
	observers map[model.Collection][]Observer
	unsubs    []store.Unsubscribe
	started   bool
}

func New(adapter store.Adapter) *Repository {
	return &Repository{
		adapter:   adapter,
		raw:       make(map[model.Collection][]store.Document),
		snap:      &Snapshot{Settings: model.Settings{}},
		observers: make(map[model.Collection][]Observer),
	}
}

// Start subscribes every collection. Each subscription delivers its current list
// before Start returns.
func (r *Repository) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = true
	r.mu.Unlock()

	for _, coll := range model.Collections() {
		coll := coll
		unsub, err := r.adapter.Subscribe(ctx, coll, func(docs []store.Document) { r.replace(coll, docs) })
		if err != nil {
			r.Stop()
			return fmt.Errorf("repository: %w", err)
		}
		r.mu.Lock()
		r.unsubs = append(r.unsubs, unsub)
		r.mu.Unlock()
	}
	log.Info().Int("collections", len(model.Collections())).Msg("repository: subscribed")
	return nil
}

// Stop cancels every subscription and clears the mirror. Start may be called again.
func (r *Repository) Stop() {
	r.mu.Lock()
	unsubs := r.unsubs
	r.unsubs = nil
	r.started = false
	r.raw = make(map[model.Collection][]store.Document)
	r.snap = &Snapshot{Settings: model.Settings{}}
	r.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
}

// All returns the documents of a collection in store order.
func (r *Repository) All(coll model.Collection) []store.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.raw[coll]
}

// Find returns one document of a collection by id.
func (r *Repository) Find(coll model.Collection, id string) (store.Document, bool) {
	for _, d := range r.All(coll) {
		if d.ID == id {
			return d, true
		}
	}
	return store.Document{}, false
}

// Snapshot returns the current typed view. It is never mutated after publication.
func (r *Repository) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Observe registers fn for snapshot replacements of coll.
func (r *Repository) Observe(coll model.Collection, fn Observer) {
	r.mu.Lock()
	r.observers[coll] = append(r.observers[coll], fn)
	r.mu.Unlock()
}

func (r *Repository) replace(coll model.Collection, docs []store.Document) {
	var decoded Snapshot
	decodeCollection(&decoded, coll, docs)

	r.mu.Lock()
	r.raw[coll] = docs
	merged := *r.snap
	copyCollection(&merged, &decoded, coll)
	r.snap = &merged
	obs := append([]Observer(nil), r.observers[coll]...)
	r.mu.Unlock()

	for _, fn := range obs {
		fn(&merged)
	}
}
