package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const DefaultSendInterval = 2 * time.Second

// SendLimiter accepts a send only when interval has passed since the last
// accepted one. Rejected attempts do not move the window.
type SendLimiter struct {
	clock    clockwork.Clock
	interval time.Duration
	last     time.Time
}

func NewSendLimiter(clock clockwork.Clock, interval time.Duration) *SendLimiter {
	return &SendLimiter{
		clock:    clock,
		interval: interval,
	}
}

func (l *SendLimiter) Allow() bool {
	now := l.clock.Now()
	if !l.last.IsZero() && now.Sub(l.last) < l.interval {
		return false
	}

	l.last = now
	return true
}
