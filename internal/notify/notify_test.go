package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler records callbacks so tests decide when they fire.
type manualScheduler struct {
	delays []time.Duration
	fns    []func()
}

func (m *manualScheduler) schedule(d time.Duration, f func()) {
	m.delays = append(m.delays, d)
	m.fns = append(m.fns, f)
}

func TestShow_ReplacesCurrent(t *testing.T) {
	s := &manualScheduler{}
	n := New(0, nil, WithScheduler(s.schedule))

	n.Error("first")
	n.Success("second")

	b, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, KindSuccess, b.Kind)
	assert.Equal(t, "second", b.Message)
	assert.Equal(t, []time.Duration{DefaultTTL, DefaultTTL}, s.delays)
}

func TestExpiry_OnlyRemovesActiveBanner(t *testing.T) {
	s := &manualScheduler{}
	n := New(time.Second, nil, WithScheduler(s.schedule))

	n.Error("old")
	n.Success("new")

	// The superseded banner's timer fires first and must not remove "new".
	s.fns[0]()
	b, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "new", b.Message)

	s.fns[1]()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestExpiry_RealTimer(t *testing.T) {
	n := New(20*time.Millisecond, nil)
	n.Success("bye")

	_, ok := n.Current()
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestBanner_Remaining(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := &manualScheduler{}
	n := New(5*time.Second, nil, WithScheduler(s.schedule), WithClock(func() time.Time { return now }))

	b := n.Error("x")
	assert.Equal(t, now.Add(5*time.Second), b.ExpiresAt)
	assert.Equal(t, 2*time.Second, b.Remaining(now.Add(3*time.Second)))
	assert.Equal(t, time.Duration(0), b.Remaining(now.Add(time.Minute)))
}

func TestObserverAndClear(t *testing.T) {
	var seen []Kind
	s := &manualScheduler{}
	n := New(0, nil, WithScheduler(s.schedule), WithObserver(func(b Banner) { seen = append(seen, b.Kind) }))

	n.Error("a")
	n.Success("b")
	assert.Equal(t, []Kind{KindError, KindSuccess}, seen)

	n.Clear()
	_, ok := n.Current()
	assert.False(t, ok)

	// Expiry after Clear is a no-op.
	s.fns[1]()
	_, ok = n.Current()
	assert.False(t, ok)
}
