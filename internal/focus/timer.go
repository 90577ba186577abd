// Package focus implements the Pomodoro timer behind focus mode.
package focus

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

func (m Mode) Duration() time.Duration {
	switch m {
	case ModeShortBreak:
		return 5 * time.Minute
	case ModeLongBreak:
		return 15 * time.Minute
	default:
		return 25 * time.Minute
	}
}

func (m Mode) Label() string {
	switch m {
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Focus"
	}
}

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown timer mode %q", s)
}

// Session is a countdown that ran to zero.
type Session struct {
	Mode     Mode
	Duration time.Duration
	EndedAt  time.Time
}

type Option func(*Timer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// OnComplete is called, outside the timer's lock, whenever a countdown
// reaches zero.
func OnComplete(fn func(Session)) Option {
	return func(t *Timer) { t.onComplete = fn }
}

type Timer struct {
	now        func() time.Time
	onComplete func(Session)

	mu        sync.Mutex
	mode      Mode
	remaining time.Duration
	running   bool
	since     time.Time
	sessions  int
}

func NewTimer(opts ...Option) *Timer {
	t := &Timer{now: time.Now, mode: ModeFocus, remaining: ModeFocus.Duration()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running || t.remaining <= 0 {
		return
	}
	t.running = true
	t.since = t.now()
}

func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.advance()
	t.running = false
}

// Reset stops the timer and refills the current mode.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.remaining = t.mode.Duration()
}

// Switch stops the timer and loads a different mode. Progress in the
// current countdown is discarded.
func (t *Timer) Switch(m Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mode = m
	t.running = false
	t.remaining = m.Duration()
}

// Tick brings the countdown up to date and fires the completion callback
// when it reaches zero. It reports whether a session completed.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	t.advance()
	if !t.running || t.remaining > 0 {
		t.mu.Unlock()
		return false
	}
	t.running = false
	s := Session{Mode: t.mode, Duration: t.mode.Duration(), EndedAt: t.now()}
	if t.mode == ModeFocus {
		t.sessions++
	}
	fn := t.onComplete
	t.mu.Unlock()

	if fn != nil {
		fn(s)
	}
	return true
}

// Run ticks every interval until ctx is done or a countdown completes.
func (t *Timer) Run(ctx context.Context, interval time.Duration, onTick func(remaining time.Duration)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			t.Pause()
			return ctx.Err()
		case <-ticker.C:
			if t.Tick() {
				return nil
			}
			if onTick != nil {
				onTick(t.Remaining())
			}
		}
	}
}

func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.advance()
	return max(t.remaining, 0)
}

func (t *Timer) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Sessions counts completed focus countdowns.
func (t *Timer) Sessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions
}

func (t *Timer) advance() {
	if !t.running {
		return
	}
	now := t.now()
	t.remaining -= now.Sub(t.since)
	t.since = now
	if t.remaining < 0 {
		t.remaining = 0
	}
}

// Format renders a duration as MM:SS.
func Format(d time.Duration) string {
	secs := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
