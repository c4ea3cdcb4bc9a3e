// Package notify keeps the single transient banner shown above the form.
//
// A new banner always replaces the current one. Each banner schedules its
// own removal after the configured TTL; when that fires, the banner is
// removed only if it is still the one on display, so superseded timers are
// harmless and never need cancelling.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL is how long a banner stays visible.
const DefaultTTL = 5 * time.Second

// Kind is the banner severity.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Banner is one transient message.
type Banner struct {
	ID        uint64    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Remaining returns how long the banner has left relative to now, never
// negative.
func (b Banner) Remaining(now time.Time) time.Duration {
	if d := b.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Scheduler runs f once after d. time.AfterFunc satisfies it once adapted.
type Scheduler func(d time.Duration, f func())

// Option configures a Notifier.
type Option func(*Notifier)

// WithScheduler replaces time.AfterFunc, mostly for tests.
func WithScheduler(s Scheduler) Option {
	return func(n *Notifier) { n.schedule = s }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

// WithObserver registers a callback invoked for every banner shown.
func WithObserver(fn func(Banner)) Option {
	return func(n *Notifier) { n.observe = fn }
}

// Notifier holds the active banner.
type Notifier struct {
	mu       sync.Mutex
	ttl      time.Duration
	seq      uint64
	current  *Banner
	now      func() time.Time
	schedule Scheduler
	observe  func(Banner)
	logger   *zap.Logger
}

// New creates a Notifier. A non-positive ttl uses DefaultTTL.
func New(ttl time.Duration, logger *zap.Logger, opts ...Option) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Notifier{
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// TTL returns the display duration.
func (n *Notifier) TTL() time.Duration { return n.ttl }

// Show replaces the current banner and schedules its expiry.
func (n *Notifier) Show(kind Kind, message string) Banner {
	n.mu.Lock()
	n.seq++
	b := Banner{
		ID:        n.seq,
		Kind:      kind,
		Message:   message,
		ExpiresAt: n.now().Add(n.ttl),
	}
	n.current = &b
	n.mu.Unlock()

	n.logger.Debug("banner shown",
		zap.Uint64("banner_id", b.ID),
		zap.String("kind", string(kind)),
		zap.String("message", message))
	if n.observe != nil {
		n.observe(b)
	}

	id := b.ID
	n.schedule(n.ttl, func() { n.expire(id) })
	return b
}

// Error shows an error banner.
func (n *Notifier) Error(message string) Banner { return n.Show(KindError, message) }

// Success shows a success banner.
func (n *Notifier) Success(message string) Banner { return n.Show(KindSuccess, message) }

// Current returns the banner on display, if any.
func (n *Notifier) Current() (Banner, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Banner{}, false
	}
	return *n.current, true
}

// Clear removes the banner on display.
func (n *Notifier) Clear() {
	n.mu.Lock()
	n.current = nil
	n.mu.Unlock()
}

func (n *Notifier) expire(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.ID != id {
		return
	}
	n.current = nil
	n.logger.Debug("banner expired", zap.Uint64("banner_id", id))
}
