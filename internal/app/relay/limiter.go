package relay

import (
	"sync"
	"time"

	"github.com/rindev0901/video-group-meeting/internal/core"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ChatLimiter is a sliding-window limiter for chat fan-out: at most
// `limit` messages per `window` per connection. A nil *ChatLimiter
// allows everything.
type ChatLimiter struct {
	mu      sync.Mutex
	clock   Clock
	history map[core.ConnID][]time.Time
	limit   int
	window  time.Duration
}

func NewChatLimiter(clock Clock, limit int, window time.Duration) *ChatLimiter {
	return &ChatLimiter{
		clock:   clock,
		history: make(map[core.ConnID][]time.Time),
		limit:   limit,
		window:  window,
	}
}

func (l *ChatLimiter) Allow(id core.ConnID) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	windowStart := now.Add(-l.window)

	attempts := l.history[id]
	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= l.limit {
		l.history[id] = fresh
		return false
	}

	l.history[id] = append(fresh, now)
	return true
}

// Forget drops the history of a gone connection.
func (l *ChatLimiter) Forget(id core.ConnID) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.history, id)
}
