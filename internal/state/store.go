package state

import (
	"context"
	"sync"
	"time"
)

// Store loads and saves wizard snapshots. Load returns Default for a missing
// or corrupt document; only transport failures are errors.
type Store interface {
	Load(ctx context.Context, key string) (State, error)
	Save(ctx context.Context, key string, s State) error
	Delete(ctx context.Context, key string) error
}

// Purger is implemented by stores that can drop snapshots not saved since
// cutoff. It returns how many were removed.
type Purger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MemoryStore keeps encoded snapshots in a map. It is the default backend and
// the one used by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	docs    map[string][]byte
	updated map[string]time.Time
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Purger = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:    make(map[string][]byte),
		updated: make(map[string]time.Time),
	}
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context, key string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	m.mu.RLock()
	doc, ok := m.docs[key]
	m.mu.RUnlock()
	if !ok {
		return Default(), nil
	}
	return Decode(doc), nil
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, key string, s State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.docs[key] = doc
	m.updated[key] = time.Now()
	m.mu.Unlock()
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.docs, key)
	delete(m.updated, key)
	m.mu.Unlock()
	return nil
}

// PurgeBefore implements Purger.
func (m *MemoryStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for key, at := range m.updated {
		if at.Before(cutoff) {
			delete(m.docs, key)
			delete(m.updated, key)
			n++
		}
	}
	return n, nil
}

// Put stores a raw document, bypassing encoding. Used to seed corrupt data.
func (m *MemoryStore) Put(key string, doc []byte) {
	m.mu.Lock()
	m.docs[key] = append([]byte(nil), doc...)
	m.updated[key] = time.Now()
	m.mu.Unlock()
}
