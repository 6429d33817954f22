// Package breaker implements the quota circuit breaker that stops calling the
// remote AI backend for a cooldown period after it reports exhausted quota.
package breaker

import (
	"sync"
	"time"
)

// DefaultCooldown is how long the breaker stays tripped after a quota error.
const DefaultCooldown = 5 * time.Minute

// QuotaBreaker is a two-state breaker: closed (calls go out) and tripped
// (calls are answered by fallback content). Tripping schedules a detached
// reset that clears the breaker after the cooldown regardless of activity
// in between. A QuotaBreaker is safe for concurrent use.
type QuotaBreaker struct {
	mu       sync.Mutex
	clock    Clock
	cooldown time.Duration

	tripped bool
	resetAt time.Time
	timer   Timer
	onReset func()
}

// Option configures a QuotaBreaker.
type Option func(*QuotaBreaker)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(b *QuotaBreaker) { b.clock = c }
}

// WithOnReset registers a callback run after an automatic reset.
func WithOnReset(f func()) Option {
	return func(b *QuotaBreaker) { b.onReset = f }
}

// New returns a closed breaker. A non-positive cooldown selects DefaultCooldown.
func New(cooldown time.Duration, opts ...Option) *QuotaBreaker {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	b := &QuotaBreaker{clock: SystemClock{}, cooldown: cooldown}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsTripped reports whether remote AI calls must be skipped. A breaker whose
// reset deadline has passed is cleared here even if its timer has not fired,
// and the reset callback runs as it would for the timer.
func (b *QuotaBreaker) IsTripped() bool {
	b.mu.Lock()
	if !b.tripped {
		b.mu.Unlock()
		return false
	}
	if b.clock.Now().Before(b.resetAt) {
		b.mu.Unlock()
		return true
	}
	b.clearLocked()
	cb := b.onReset
	b.mu.Unlock()

	if cb != nil {
		cb()
	}
	return false
}

// Trip opens the breaker and schedules the reset. It returns true only for
// the call that changed the state; tripping an open breaker keeps the
// original deadline.
func (b *QuotaBreaker) Trip() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tripped {
		return false
	}
	b.tripped = true
	b.resetAt = b.clock.Now().Add(b.cooldown)
	b.timer = b.clock.AfterFunc(b.cooldown, b.autoReset)
	return true
}

// ResetAt returns the pending reset deadline, or the zero time when closed.
func (b *QuotaBreaker) ResetAt() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.tripped {
		return time.Time{}
	}
	return b.resetAt
}

// Cooldown returns the configured cooldown.
func (b *QuotaBreaker) Cooldown() time.Duration { return b.cooldown }

// Reset closes the breaker immediately and cancels the pending timer.
func (b *QuotaBreaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearLocked()
}

func (b *QuotaBreaker) autoReset() {
	b.mu.Lock()
	wasTripped := b.tripped
	b.clearLocked()
	cb := b.onReset
	b.mu.Unlock()

	if wasTripped && cb != nil {
		cb()
	}
}

func (b *QuotaBreaker) clearLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.tripped = false
	b.resetAt = time.Time{}
}
