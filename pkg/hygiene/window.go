package hygiene

import (
	"sync"
	"time"
)

const patternWindow = time.Minute

// RateWindow watches per-client request timing inside a sliding one-minute
// window and flags cadences no human produces: floods, sub-second mean
// intervals, and near-zero interval variance (scripted schedules).
type RateWindow struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewRateWindow() *RateWindow {
	return &RateWindow{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// Observe records one request for the client and reports whether the
// client's recent cadence is suspicious.
func (w *RateWindow) Observe(clientHash string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	cutoff := now.Add(-patternWindow)

	times := append(w.hits[clientHash], now)
	pruned := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			pruned = append(pruned, t)
		}
	}
	w.hits[clientHash] = pruned

	if len(pruned) > 30 {
		return true
	}
	if len(pruned) >= 5 {
		intervals := make([]float64, 0, len(pruned)-1)
		for i := 1; i < len(pruned); i++ {
			intervals = append(intervals, pruned[i].Sub(pruned[i-1]).Seconds())
		}
		var sum float64
		for _, iv := range intervals {
			sum += iv
		}
		mean := sum / float64(len(intervals))
		if mean < 0.5 {
			return true
		}
		var variance float64
		for _, iv := range intervals {
			variance += (iv - mean) * (iv - mean)
		}
		variance /= float64(len(intervals))
		if variance < 0.01 {
			return true
		}
	}
	return false
}

// Sweep drops clients idle longer than maxIdle and returns how many were
// removed. Callers run this on a timer so the map cannot grow unbounded.
func (w *RateWindow) Sweep(maxIdle time.Duration) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := w.now().Add(-maxIdle)
	removed := 0
	for client, times := range w.hits {
		if len(times) == 0 || times[len(times)-1].Before(cutoff) {
			delete(w.hits, client)
			removed++
		}
	}
	return removed
}

// Limiter enforces a hard requests-per-window ceiling per key. Unlike
// RateWindow it answers allow/deny, not suspicion.
type Limiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records a hit for key and reports whether it is inside the limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	times := l.hits[key]
	pruned := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			pruned = append(pruned, t)
		}
	}

	if len(pruned) >= l.limit {
		l.hits[key] = pruned
		return false
	}
	l.hits[key] = append(pruned, now)
	return true
}

// Sweep drops keys with no hits inside the window.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	removed := 0
	for key, times := range l.hits {
		if len(times) == 0 || times[len(times)-1].Before(cutoff) {
			delete(l.hits, key)
			removed++
		}
	}
	return removed
}
