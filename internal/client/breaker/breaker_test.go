package breaker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 14, 6, 0, 0, 0, time.UTC)

func TestNew_DefaultCooldown(t *testing.T) {
	b := New(0)
	assert.Equal(t, DefaultCooldown, b.Cooldown())
	assert.False(t, b.IsTripped())
	assert.True(t, b.ResetAt().IsZero())
}

func TestTrip_ReportsTransitionOnce(t *testing.T) {
	clock := NewManualClock(t0)
	b := New(5*time.Minute, WithClock(clock))

	assert.True(t, b.Trip())
	assert.False(t, b.Trip(), "second trip while open is not a transition")
	assert.True(t, b.IsTripped())
	assert.Equal(t, t0.Add(5*time.Minute), b.ResetAt())
	assert.Equal(t, 1, clock.Pending(), "only one reset timer is scheduled")
}

func TestTrip_KeepsOriginalDeadline(t *testing.T) {
	clock := NewManualClock(t0)
	b := New(5*time.Minute, WithClock(clock))

	b.Trip()
	clock.Advance(4 * time.Minute)
	b.Trip()

	assert.Equal(t, t0.Add(5*time.Minute), b.ResetAt())
	clock.Advance(time.Minute)
	assert.False(t, b.IsTripped())
}

func TestAutoReset_AfterCooldown(t *testing.T) {
	clock := NewManualClock(t0)
	var resets atomic.Int32
	b := New(5*time.Minute, WithClock(clock), WithOnReset(func() { resets.Add(1) }))

	b.Trip()
	clock.Advance(5*time.Minute - time.Second)
	require.True(t, b.IsTripped())

	clock.Advance(time.Second)
	assert.False(t, b.IsTripped())
	assert.EqualValues(t, 1, resets.Load())
	assert.Zero(t, clock.Pending())

	assert.True(t, b.Trip(), "breaker can trip again after reset")
}

func TestIsTripped_DeadlinePassedWithoutTimer(t *testing.T) {
	clock := NewManualClock(t0)
	var resets atomic.Int32
	var b *QuotaBreaker
	b = New(time.Minute, WithClock(clock), WithOnReset(func() {
		resets.Add(1)
		// the callback may read the breaker; it runs without the lock held
		assert.True(t, b.ResetAt().IsZero())
	}))
	b.Trip()

	// move time without firing timers, as after a suspended process
	clock.mu.Lock()
	clock.now = clock.now.Add(2 * time.Minute)
	clock.mu.Unlock()

	assert.False(t, b.IsTripped())
	assert.EqualValues(t, 1, resets.Load())
	assert.Zero(t, clock.Pending(), "clearing cancels the stale timer")

	assert.False(t, b.IsTripped())
	clock.Advance(time.Hour)
	assert.EqualValues(t, 1, resets.Load(), "one reset, one callback")
}

func TestReset_CancelsTimer(t *testing.T) {
	clock := NewManualClock(t0)
	var resets atomic.Int32
	b := New(time.Minute, WithClock(clock), WithOnReset(func() { resets.Add(1) }))

	b.Trip()
	b.Reset()

	assert.False(t, b.IsTripped())
	clock.Advance(time.Hour)
	assert.Zero(t, resets.Load(), "manual reset must not run the auto-reset callback")
}

func TestSystemClock_RealTimerResets(t *testing.T) {
	b := New(20 * time.Millisecond)
	require.True(t, b.Trip())

	assert.Eventually(t, func() bool { return !b.IsTripped() }, time.Second, 5*time.Millisecond)
}
