package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Job states.
const (
	StateQueued  = "queued"
	StateRunning = "running"
	StateDone    = "done"
	StateFailed  = "failed"
)

// JobStatus is what a client polling an export sees.
type JobStatus struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	State     string    `json:"state"`
	Files     []string  `json:"files,omitempty"`
	Error     string    `json:"error,omitempty"`
	Attempts  int       `json:"attempts"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StatusStore interface {
	Put(ctx context.Context, st JobStatus) error
	Get(ctx context.Context, id string) (JobStatus, bool, error)
}

type MemoryStatusStore struct {
	mu   sync.RWMutex
	jobs map[string]JobStatus
}

func NewMemoryStatusStore() *MemoryStatusStore {
	return &MemoryStatusStore{jobs: make(map[string]JobStatus)}
}

func (m *MemoryStatusStore) Put(_ context.Context, st JobStatus) error {
	m.mu.Lock()
	m.jobs[st.ID] = st
	m.mu.Unlock()
	return nil
}

func (m *MemoryStatusStore) Get(_ context.Context, id string) (JobStatus, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.jobs[id]
	return st, ok, nil
}

const (
	statusPrefix = "jobs:status:"
	statusTTL    = 24 * time.Hour
)

// RedisStatusStore keeps each status as a JSON string that expires after a day.
type RedisStatusStore struct {
	rdb *redis.Client
}

func NewRedisStatusStore(rdb *redis.Client) *RedisStatusStore { return &RedisStatusStore{rdb: rdb} }

func (r *RedisStatusStore) Put(ctx context.Context, st JobStatus) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, statusPrefix+st.ID, data, statusTTL).Err()
}

func (r *RedisStatusStore) Get(ctx context.Context, id string) (JobStatus, bool, error) {
	data, err := r.rdb.Get(ctx, statusPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return JobStatus{}, false, nil
	}
	if err != nil {
		return JobStatus{}, false, err
	}
	var st JobStatus
	if err := json.Unmarshal(data, &st); err != nil {
		return JobStatus{}, false, err
	}
	return st, true, nil
}
