package session

import (
	"context"
	"errors"
)

// Store errors
var (
	// ErrNotFound is returned by Get when no session exists for the id.
	ErrNotFound = errors.New("session not found")

	// ErrStoreUnavailable marks backend failures that are not the
	// caller's fault. The pipeline degrades to a turn-local session
	// rather than failing the turn.
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// Store is the persistence contract shared by the in-memory and Redis
// backends. Implementations serialize sessions as JSON so a stored
// record never aliases a caller's live pointer.
type Store interface {
	// Get loads one session. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*Session, error)

	// Set persists one session and refreshes its TTL. LastUpdated is
	// stamped on the way in.
	Set(ctx context.Context, id string, sess *Session) error

	// Delete removes one session, reporting whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// Exists reports whether the session is present. Backend failures
	// count as absent.
	Exists(ctx context.Context, id string) bool

	// CleanupExpired drops sessions idle past the TTL, returning how
	// many were removed. Backends with native expiry return 0.
	CleanupExpired(ctx context.Context) int

	// ActiveIDs lists the ids currently stored. The lock manager
	// sweeps stale per-session locks against this set.
	ActiveIDs(ctx context.Context) []string

	// Close releases backend resources.
	Close() error
}
