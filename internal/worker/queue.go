package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQueueEmpty is returned by Pop when nothing arrived before the timeout.
var ErrQueueEmpty = errors.New("queue empty")

// Queue is a set of named FIFO lists.
type Queue interface {
	Push(ctx context.Context, queue string, data []byte) error
	// Pop blocks up to timeout and returns the queue the item came from.
	Pop(ctx context.Context, timeout time.Duration, queues ...string) (string, []byte, error)
	Len(ctx context.Context, queue string) (int64, error)
}

// ── Redis ────────────────────────────────────────────────────────────────────

// RedisQueue pushes with LPUSH and pops with BRPOP.
type RedisQueue struct {
	rdb *redis.Client
}

func NewRedisQueue(rdb *redis.Client) *RedisQueue { return &RedisQueue{rdb: rdb} }

func (q *RedisQueue) Push(ctx context.Context, queue string, data []byte) error {
	return q.rdb.LPush(ctx, queue, data).Err()
}

func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration, queues ...string) (string, []byte, error) {
	result, err := q.rdb.BRPop(ctx, timeout, queues...).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil, ErrQueueEmpty
	}
	if err != nil {
		return "", nil, err
	}
	if len(result) < 2 {
		return "", nil, ErrQueueEmpty
	}
	return result[0], []byte(result[1]), nil
}

func (q *RedisQueue) Len(ctx context.Context, queue string) (int64, error) {
	return q.rdb.LLen(ctx, queue).Result()
}

// ── Memory ───────────────────────────────────────────────────────────────────

// MemoryQueue is the single-process queue used when no Redis is configured.
type MemoryQueue struct {
	mu    sync.Mutex
	lists map[string][][]byte
	wake  chan struct{}
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{lists: make(map[string][][]byte), wake: make(chan struct{})}
}

func (q *MemoryQueue) Push(_ context.Context, queue string, data []byte) error {
	q.mu.Lock()
	q.lists[queue] = append(q.lists[queue], append([]byte(nil), data...))
	close(q.wake)
	q.wake = make(chan struct{})
	q.mu.Unlock()
	return nil
}

func (q *MemoryQueue) Pop(ctx context.Context, timeout time.Duration, queues ...string) (string, []byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		q.mu.Lock()
		for _, name := range queues {
			if l := q.lists[name]; len(l) > 0 {
				item := l[0]
				q.lists[name] = l[1:]
				q.mu.Unlock()
				return name, item, nil
			}
		}
		wake := q.wake
		q.mu.Unlock()

		select {
		case <-wake:
		case <-timer.C:
			return "", nil, ErrQueueEmpty
		case <-ctx.Done():
			return "", nil, ctx.Err()
		}
	}
}

func (q *MemoryQueue) Len(_ context.Context, queue string) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.lists[queue])), nil
}
