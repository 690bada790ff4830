package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"biowearth/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WriteObserver is told about every write attempt (op is create/update/delete/set).
type WriteObserver func(op string, coll model.Collection, err error)

// Feed implements Adapter on top of a Backend. After each successful write it
// publishes a change; on every change notification it re-lists the collection
// and pushes the full list to that collection's subscribers.
type Feed struct {
	backend     Backend
	broadcaster Broadcaster
	now         func() time.Time
	observe     WriteObserver

	mu     sync.Mutex
	nextID int
	subs   map[model.Collection]map[int]Listener
	// one lock per collection so list+deliver runs in change order
	refreshMu map[model.Collection]*sync.Mutex
}

type FeedOption func(*Feed)

// WithClock overrides the createdAt clock.
func WithClock(now func() time.Time) FeedOption { return func(f *Feed) { f.now = now } }

// WithWriteObserver registers a hook called after every write.
func WithWriteObserver(o WriteObserver) FeedOption { return func(f *Feed) { f.observe = o } }

// NewFeed wires a backend to a broadcaster. A nil broadcaster means in-process only.
func NewFeed(backend Backend, broadcaster Broadcaster, opts ...FeedOption) *Feed {
	if broadcaster == nil {
		broadcaster = NewLocalBroadcaster()
	}
	f := &Feed{
		backend:     backend,
		broadcaster: broadcaster,
		now:         time.Now,
		subs:        make(map[model.Collection]map[int]Listener),
		refreshMu:   make(map[model.Collection]*sync.Mutex),
	}
	for _, o := range opts {
		o(f)
	}
	broadcaster.Listen(f.refresh)
	return f
}

// Subscribe delivers the current list immediately, then again after every change.
func (f *Feed) Subscribe(ctx context.Context, coll model.Collection, fn Listener) (Unsubscribe, error) {
	lock := f.collectionLock(coll)
	lock.Lock()
	defer lock.Unlock()

	docs, err := f.backend.List(ctx, coll)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", coll, err)
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	if f.subs[coll] == nil {
		f.subs[coll] = make(map[int]Listener)
	}
	f.subs[coll][id] = fn
	f.mu.Unlock()

	fn(docs)

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[coll], id)
			f.mu.Unlock()
		})
	}, nil
}

func (f *Feed) Create(ctx context.Context, coll model.Collection, fields Fields) (string, error) {
	id := uuid.NewString()
	body := fields.Clone()
	delete(body, FieldID)
	body[FieldCreatedAt] = f.now().UTC()
	enc, err := EncodeFields(body)
	if err == nil {
		err = f.backend.Insert(ctx, coll, id, enc)
	}
	if err = f.written(ctx, "create", coll, err); err != nil {
		return "", err
	}
	return id, nil
}

func (f *Feed) Update(ctx context.Context, coll model.Collection, id string, fields Fields) error {
	err := f.backend.Merge(ctx, coll, id, fields.Clone())
	return f.written(ctx, "update", coll, err)
}

func (f *Feed) Delete(ctx context.Context, coll model.Collection, id string) error {
	err := f.backend.Remove(ctx, coll, id)
	return f.written(ctx, "delete", coll, err)
}

func (f *Feed) SetKeyed(ctx context.Context, coll model.Collection, key string, fields Fields) error {
	enc, err := EncodeFields(fields)
	if err == nil {
		err = f.backend.Put(ctx, coll, key, enc)
	}
	return f.written(ctx, "set", coll, err)
}

// Close releases the broadcaster and the backend.
func (f *Feed) Close() error {
	if err := f.broadcaster.Close(); err != nil {
		log.Warn().Err(err).Msg("store: close broadcaster")
	}
	return f.backend.Close()
}

// Ping checks backend connectivity.
func (f *Feed) Ping(ctx context.Context) error { return f.backend.Ping(ctx) }

func (f *Feed) written(ctx context.Context, op string, coll model.Collection, err error) error {
	if f.observe != nil {
		f.observe(op, coll, err)
	}
	if err != nil {
		log.Error().Err(err).Str("op", op).Str("collection", string(coll)).Msg("store: write failed")
		return fmt.Errorf("%s %s: %w", op, coll, err)
	}
	if perr := f.broadcaster.Publish(ctx, coll); perr != nil {
		log.Warn().Err(perr).Str("collection", string(coll)).Msg("store: publish change")
	}
	return nil
}

func (f *Feed) collectionLock(coll model.Collection) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.refreshMu[coll]
	if !ok {
		l = &sync.Mutex{}
		f.refreshMu[coll] = l
	}
	return l
}

func (f *Feed) refresh(coll model.Collection) {
	f.mu.Lock()
	n := len(f.subs[coll])
	f.mu.Unlock()
	if n == 0 {
		return
	}

	lock := f.collectionLock(coll)
	lock.Lock()
	defer lock.Unlock()

	docs, err := f.backend.List(context.Background(), coll)
	if err != nil {
		log.Error().Err(err).Str("collection", string(coll)).Msg("store: refresh failed")
		return
	}

	f.mu.Lock()
	listeners := make([]Listener, 0, len(f.subs[coll]))
	for _, fn := range f.subs[coll] {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(docs)
	}
}
