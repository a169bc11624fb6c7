package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	// backendOpTimeout bounds every store call made by the manager.
	backendOpTimeout = 5 * time.Second

	// sweepInterval is how often expired sessions and stale locks are
	// reaped.
	sweepInterval = 5 * time.Minute

	// DefaultMaxConcurrentTurns caps simultaneous turn processing when
	// no limit is configured.
	DefaultMaxConcurrentTurns = 1000
)

// Manager serializes access to sessions. Each session id owns a mutex
// so turns for one conversation run strictly in order, while a global
// semaphore bounds how many turns run at once across all sessions.
type Manager struct {
	store Store
	log   *zap.Logger
	sem   *semaphore.Weighted

	mu    sync.RWMutex
	locks map[string]*sync.Mutex

	sweepEvery time.Duration
	sweeping   atomic.Bool
	stop       chan struct{}
	done       chan struct{}
	startOnce  sync.Once
	stopOnce   sync.Once
}

// NewManager wraps a store. maxConcurrent bounds simultaneous turns;
// zero or negative selects DefaultMaxConcurrentTurns. A nil logger is
// replaced with a no-op logger.
func NewManager(store Store, maxConcurrent int64, log *zap.Logger) *Manager {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentTurns
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		store:      store,
		log:        log,
		sem:        semaphore.NewWeighted(maxConcurrent),
		locks:      make(map[string]*sync.Mutex),
		sweepEvery: sweepInterval,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// lockFor returns the session's mutex, creating it on first use.
func (m *Manager) lockFor(id string) *sync.Mutex {
	m.mu.RLock()
	lk, ok := m.locks[id]
	m.mu.RUnlock()
	if ok {
		return lk
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if lk, ok := m.locks[id]; ok {
		return lk
	}
	lk = &sync.Mutex{}
	m.locks[id] = lk
	return lk
}

// Turn runs one engagement turn under the session's lock and a slot on
// the global concurrency gate. fn mutates the session in place; the
// result is persisted only when fn returns nil, so a failed turn
// leaves the stored state untouched. A backend failure on load or
// persist degrades to a turn-local session instead of failing the
// turn.
func (m *Manager) Turn(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("session: concurrency gate: %w", err)
	}
	defer m.sem.Release(1)

	lk := m.lockFor(id)
	lk.Lock()
	defer lk.Unlock()

	sess := m.loadOrFresh(ctx, id)
	if err := fn(sess); err != nil {
		return nil, err
	}

	if err := m.setBounded(ctx, id, sess); err != nil {
		m.log.Warn("session persist failed, turn served from memory",
			zap.String("session_id", id), zap.Error(err))
	}
	return sess, nil
}

// GetOrCreate loads a session, creating and persisting a fresh one
// when absent.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	lk := m.lockFor(id)
	lk.Lock()
	defer lk.Unlock()

	sess, err := m.getBounded(ctx, id)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	sess = New(id)
	if err := m.setBounded(ctx, id, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session under its lock. Returns ErrNotFound when absent.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	lk := m.lockFor(id)
	lk.Lock()
	defer lk.Unlock()
	return m.getBounded(ctx, id)
}

// Update persists a session under its lock.
func (m *Manager) Update(ctx context.Context, sess *Session) error {
	lk := m.lockFor(sess.SessionID)
	lk.Lock()
	defer lk.Unlock()
	return m.setBounded(ctx, sess.SessionID, sess)
}

// Delete removes a session and its lock entry, reporting whether the
// session existed.
func (m *Manager) Delete(ctx context.Context, id string) (bool, error) {
	lk := m.lockFor(id)
	lk.Lock()
	defer lk.Unlock()

	opCtx, cancel := context.WithTimeout(ctx, backendOpTimeout)
	defer cancel()
	existed, err := m.store.Delete(opCtx, id)

	m.mu.Lock()
	delete(m.locks, id)
	m.mu.Unlock()

	return existed, err
}

// SweepLocks drops lock entries for sessions the store no longer
// holds. Locks currently held by an in-flight turn are left alone.
func (m *Manager) SweepLocks(ctx context.Context) int {
	active := make(map[string]struct{})
	for _, id := range m.store.ActiveIDs(ctx) {
		active[id] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, lk := range m.locks {
		if _, ok := active[id]; ok {
			continue
		}
		if lk.TryLock() {
			delete(m.locks, id)
			lk.Unlock()
			removed++
		}
	}
	return removed
}

// StartSweeper launches the background reaper for expired sessions and
// stale locks. Call Stop to shut it down.
func (m *Manager) StartSweeper() {
	m.startOnce.Do(func() {
		m.sweeping.Store(true)
		go m.sweepLoop()
	})
}

func (m *Manager) sweepLoop() {
	defer close(m.done)
	ticker := time.NewTicker(m.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), backendOpTimeout)
			expired := m.store.CleanupExpired(ctx)
			reaped := m.SweepLocks(ctx)
			cancel()
			if expired > 0 || reaped > 0 {
				m.log.Info("session sweep",
					zap.Int("expired", expired), zap.Int("locks_reaped", reaped))
			}
		}
	}
}

// Stop shuts the sweeper down and waits for it to exit. Safe to call
// whether or not the sweeper was started, and safe to call twice.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		if m.sweeping.Load() {
			<-m.done
		}
	})
}

func (m *Manager) getBounded(ctx context.Context, id string) (*Session, error) {
	opCtx, cancel := context.WithTimeout(ctx, backendOpTimeout)
	defer cancel()
	return m.store.Get(opCtx, id)
}

func (m *Manager) setBounded(ctx context.Context, id string, sess *Session) error {
	opCtx, cancel := context.WithTimeout(ctx, backendOpTimeout)
	defer cancel()
	return m.store.Set(opCtx, id, sess)
}

// loadOrFresh fetches the session, handing back a fresh one when the
// id is unknown or the backend is down. The degraded case is logged
// and the turn proceeds against local state.
func (m *Manager) loadOrFresh(ctx context.Context, id string) *Session {
	sess, err := m.getBounded(ctx, id)
	switch {
	case err == nil:
		return sess
	case errors.Is(err, ErrNotFound):
		return New(id)
	default:
		m.log.Warn("session load failed, degrading to fresh state",
			zap.String("session_id", id), zap.Error(err))
		return New(id)
	}
}
