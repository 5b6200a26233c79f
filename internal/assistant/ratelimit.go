package assistant

import (
	"sync"
	"time"
)

type rateRecord struct {
	count         int
	windowResetAt time.Time
}

// RateLimiter is a per-client sliding-counter limiter. It is injected
// into the Responder rather than living in HTTP middleware because a
// denial must still produce a well-formed chat response, not a 429.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	records map[string]*rateRecord
	now     func() time.Time
}

func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 20
	}
	return &RateLimiter{
		window:  window,
		max:     max,
		records: make(map[string]*rateRecord),
		now:     time.Now,
	}
}

// Allow reports whether clientID may make another request in the current
// window. A denied request does not consume window budget.
func (l *RateLimiter) Allow(clientID string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	record, ok := l.records[clientID]
	if !ok || now.After(record.windowResetAt) {
		l.records[clientID] = &rateRecord{count: 1, windowResetAt: now.Add(l.window)}
		return true
	}
	if record.count >= l.max {
		return false
	}
	record.count++
	return true
}

// SweepExpired drops records whose window has passed and returns how
// many were removed. Scheduled periodically so the map cannot grow with
// every client the site has ever seen.
func (l *RateLimiter) SweepExpired() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for id, record := range l.records {
		if now.After(record.windowResetAt) {
			delete(l.records, id)
			removed++
		}
	}
	return removed
}

func (l *RateLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
