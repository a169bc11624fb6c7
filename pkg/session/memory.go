package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. It is the default
// backend and the degradation target when Redis is unreachable.
//
// Records are stored as marshaled JSON. Every Get unmarshals a fresh
// Session, so two callers holding the "same" session never share
// slices or maps through the store.
type MemoryStore struct {
	mu       sync.RWMutex
	records  map[string][]byte
	lastSeen map[string]time.Time
	ttl      time.Duration
}

// NewMemoryStore builds an empty in-memory store. Sessions idle longer
// than ttl are dropped by CleanupExpired.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		records:  make(map[string][]byte),
		lastSeen: make(map[string]time.Time),
		ttl:      ttl,
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	data, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %q: %w", id, err)
	}
	return &sess, nil
}

func (m *MemoryStore) Set(ctx context.Context, id string, sess *Session) error {
	sess.Touch(time.Now().UTC())

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", id, err)
	}

	m.mu.Lock()
	m.records[id] = data
	m.lastSeen[id] = sess.LastUpdated
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return false, nil
	}
	delete(m.records, id)
	delete(m.lastSeen, id)
	return true, nil
}

func (m *MemoryStore) Exists(ctx context.Context, id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[id]
	return ok
}

func (m *MemoryStore) CleanupExpired(ctx context.Context) int {
	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()
	var expired []string
	for id, seen := range m.lastSeen {
		if now.Sub(seen) > m.ttl {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(m.records, id)
		delete(m.lastSeen, id)
	}
	return len(expired)
}

func (m *MemoryStore) ActiveIDs(ctx context.Context) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	return ids
}

func (m *MemoryStore) Close() error { return nil }
