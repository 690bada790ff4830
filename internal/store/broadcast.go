package store

import (
	"context"
	"strings"
	"sync"

	"biowearth/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Broadcaster tells every listening Feed that a collection changed.
type Broadcaster interface {
	Publish(ctx context.Context, coll model.Collection) error
	Listen(fn func(coll model.Collection))
	Close() error
}

// ── Local ────────────────────────────────────────────────────────────────────

// LocalBroadcaster delivers notifications in-process, synchronously.
type LocalBroadcaster struct {
	mu        sync.RWMutex
	listeners []func(model.Collection)
}

func NewLocalBroadcaster() *LocalBroadcaster { return &LocalBroadcaster{} }

func (b *LocalBroadcaster) Publish(_ context.Context, coll model.Collection) error {
	b.mu.RLock()
	ls := append([]func(model.Collection){}, b.listeners...)
	b.mu.RUnlock()
	for _, fn := range ls {
		fn(coll)
	}
	return nil
}

func (b *LocalBroadcaster) Listen(fn func(model.Collection)) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

func (b *LocalBroadcaster) Close() error { return nil }

// ── Redis pub/sub ────────────────────────────────────────────────────────────

// ChangeChannel is the pub/sub channel carrying "<instance>:<collection>" messages.
const ChangeChannel = "biowearth:changes"

// RedisBroadcaster fans change notifications out to every API instance that
// shares the database. Local listeners are notified synchronously on Publish;
// messages an instance published itself are skipped when they come back.
type RedisBroadcaster struct {
	rdb      *redis.Client
	instance string
	local    *LocalBroadcaster
	pubsub   *redis.PubSub
	done     chan struct{}
	once     sync.Once
}

// NewRedisBroadcaster subscribes to ChangeChannel and starts the receive loop.
func NewRedisBroadcaster(ctx context.Context, rdb *redis.Client) (*RedisBroadcaster, error) {
	ps := rdb.Subscribe(ctx, ChangeChannel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}
	b := &RedisBroadcaster{
		rdb:      rdb,
		instance: uuid.NewString(),
		local:    NewLocalBroadcaster(),
		pubsub:   ps,
		done:     make(chan struct{}),
	}
	go b.receive()
	return b, nil
}

func (b *RedisBroadcaster) receive() {
	ch := b.pubsub.Channel()
	for {
		select {
		case <-b.done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			instance, coll, found := strings.Cut(msg.Payload, ":")
			if !found || instance == b.instance {
				continue
			}
			log.Debug().Str("collection", coll).Str("from", instance).Msg("store: remote change")
			_ = b.local.Publish(context.Background(), model.Collection(coll))
		}
	}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, coll model.Collection) error {
	_ = b.local.Publish(ctx, coll)
	return b.rdb.Publish(ctx, ChangeChannel, b.instance+":"+string(coll)).Err()
}

func (b *RedisBroadcaster) Listen(fn func(model.Collection)) { b.local.Listen(fn) }

func (b *RedisBroadcaster) Close() error {
	var err error
	b.once.Do(func() {
		close(b.done)
		err = b.pubsub.Close()
	})
	return err
}
