package store

import (
	"context"
	"sync"

	"biowearth/internal/model"
)

// MemoryBackend keeps encoded bodies in process memory, in insertion order.
type MemoryBackend struct {
	mu    sync.RWMutex
	colls map[model.Collection]*memCollection
}

type memCollection struct {
	order []string
	docs  map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{colls: make(map[model.Collection]*memCollection)}
}

func (m *MemoryBackend) coll(c model.Collection) *memCollection {
	mc, ok := m.colls[c]
	if !ok {
		mc = &memCollection{docs: make(map[string][]byte)}
		m.colls[c] = mc
	}
	return mc
}

func (m *MemoryBackend) List(_ context.Context, c model.Collection) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mc, ok := m.colls[c]
	if !ok {
		return []Document{}, nil
	}
	out := make([]Document, 0, len(mc.order))
	for _, id := range mc.order {
		f, err := DecodeFields(mc.docs[id])
		if err != nil {
			return nil, err
		}
		out = append(out, Document{ID: id, Fields: f})
	}
	return out, nil
}

func (m *MemoryBackend) Insert(_ context.Context, c model.Collection, id string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc := m.coll(c)
	if _, exists := mc.docs[id]; !exists {
		mc.order = append(mc.order, id)
	}
	mc.docs[id] = append([]byte(nil), body...)
	return nil
}

func (m *MemoryBackend) Merge(_ context.Context, c model.Collection, id string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc, ok := m.colls[c]
	if !ok {
		return ErrNotFound
	}
	body, ok := mc.docs[id]
	if !ok {
		return ErrNotFound
	}
	merged, err := mergeBody(body, fields)
	if err != nil {
		return err
	}
	mc.docs[id] = merged
	return nil
}

func (m *MemoryBackend) Remove(_ context.Context, c model.Collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc, ok := m.colls[c]
	if !ok {
		return nil
	}
	if _, ok := mc.docs[id]; !ok {
		return nil
	}
	delete(mc.docs, id)
	for i, oid := range mc.order {
		if oid == id {
			mc.order = append(mc.order[:i], mc.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryBackend) Put(ctx context.Context, c model.Collection, id string, body []byte) error {
	return m.Insert(ctx, c, id, body)
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }

func (m *MemoryBackend) Close() error { return nil }
