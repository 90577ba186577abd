package focus

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time      { return c.t }
func (c *fakeClock) add(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func TestTimerCountsDownOnlyWhileRunning(t *testing.T) {
	clock := newClock()
	tm := NewTimer(WithClock(clock.now))

	if tm.Mode() != ModeFocus || tm.Remaining() != 25*time.Minute {
		t.Fatalf("initial state = %s %s", tm.Mode(), tm.Remaining())
	}

	clock.add(time.Minute)
	if tm.Remaining() != 25*time.Minute {
		t.Error("stopped timer moved")
	}

	tm.Start()
	clock.add(10 * time.Minute)
	if got := tm.Remaining(); got != 15*time.Minute {
		t.Errorf("remaining = %s, want 15m", got)
	}

	tm.Pause()
	clock.add(time.Hour)
	if got := tm.Remaining(); got != 15*time.Minute {
		t.Errorf("paused remaining = %s", got)
	}

	tm.Reset()
	if tm.Running() || tm.Remaining() != 25*time.Minute {
		t.Errorf("after reset: running=%v remaining=%s", tm.Running(), tm.Remaining())
	}
}

func TestTimerCompletion(t *testing.T) {
	clock := newClock()
	var done []Session
	tm := NewTimer(WithClock(clock.now), OnComplete(func(s Session) { done = append(done, s) }))

	tm.Start()
	clock.add(24 * time.Minute)
	if tm.Tick() {
		t.Fatal("completed early")
	}
	clock.add(2 * time.Minute)
	if !tm.Tick() {
		t.Fatal("did not complete")
	}
	if tm.Running() || tm.Remaining() != 0 {
		t.Errorf("after completion: running=%v remaining=%s", tm.Running(), tm.Remaining())
	}
	if len(done) != 1 || done[0].Mode != ModeFocus || done[0].Duration != 25*time.Minute {
		t.Fatalf("sessions = %+v", done)
	}
	if tm.Sessions() != 1 {
		t.Errorf("Sessions = %d", tm.Sessions())
	}

	// a finished countdown does not restart until reset
	tm.Start()
	if tm.Running() {
		t.Error("started with nothing remaining")
	}

	tm.Switch(ModeShortBreak)
	tm.Start()
	clock.add(5 * time.Minute)
	tm.Tick()
	if tm.Sessions() != 1 {
		t.Errorf("breaks counted as focus sessions: %d", tm.Sessions())
	}
	if len(done) != 2 || done[1].Mode != ModeShortBreak {
		t.Errorf("sessions = %+v", done)
	}
}

func TestSwitchDiscardsProgress(t *testing.T) {
	clock := newClock()
	tm := NewTimer(WithClock(clock.now))
	tm.Start()
	clock.add(3 * time.Minute)
	tm.Switch(ModeLongBreak)
	if tm.Running() || tm.Remaining() != 15*time.Minute || tm.Mode() != ModeLongBreak {
		t.Errorf("after switch: %v %s %s", tm.Running(), tm.Remaining(), tm.Mode())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	tm := NewTimer()
	tm.Start()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tm.Run(ctx, time.Hour, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v", err)
	}
	if tm.Running() {
		t.Error("timer still running after cancel")
	}
}

func TestRunReturnsOnCompletion(t *testing.T) {
	clock := newClock()
	tm := NewTimer(WithClock(clock.now))
	tm.Start()
	clock.add(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tm.Run(ctx, time.Millisecond, nil); err != nil {
		t.Fatalf("Run err = %v", err)
	}
}

func TestParseModeAndFormat(t *testing.T) {
	if m, err := ParseMode("long_break"); err != nil || m != ModeLongBreak {
		t.Errorf("ParseMode = %s, %v", m, err)
	}
	if _, err := ParseMode("nap"); err == nil {
		t.Error("ParseMode accepted unknown mode")
	}
	if got := Format(25 * time.Minute); got != "25:00" {
		t.Errorf("Format = %q", got)
	}
	if got := Format(61*time.Second + 400*time.Millisecond); got != "01:01" {
		t.Errorf("Format = %q", got)
	}
	if ModeShortBreak.Label() != "Short Break" {
		t.Errorf("Label = %q", ModeShortBreak.Label())
	}
}
