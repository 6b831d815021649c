package history

import (
	"context"
	"sync"
)

// DefaultMemoryCapacity is the number of entries a MemoryStore keeps when
// no capacity is given.
const DefaultMemoryCapacity = 1000

// MemoryStore keeps the most recent entries in a ring buffer. It is used
// when no database is configured; entries are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
}

// NewMemoryStore returns a store holding at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{entries: make([]Entry, capacity)}
}

// Record implements Store.
func (m *MemoryStore) Record(ctx context.Context, e Entry) error {
	e, err := prepare(e)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = e
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

// Recent implements Store.
func (m *MemoryStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = clampLimit(limit)

	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.len()
	if limit > n {
		limit = n
	}

	out := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		pos := (m.next - i + len(m.entries)) % len(m.entries)
		out = append(out, m.entries[pos])
	}
	return out, nil
}

// Len returns the number of entries held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.len()
}

func (m *MemoryStore) len() int {
	if m.full {
		return len(m.entries)
	}
	return m.next
}
