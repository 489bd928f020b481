package ticker

import (
	"testing"
	"time"
)

type counter struct{ n int }

func (c *counter) Tick() { c.n++ }

func TestAdvanceRunsWholeIntervals(t *testing.T) {
	c := &counter{}
	f := NewFixedStep(30*time.Millisecond, 5, c)
	f.Start()

	if n := f.Advance(29 * time.Millisecond); n != 0 {
		t.Fatalf("Advance(29ms) = %d, want 0", n)
	}
	if n := f.Advance(1 * time.Millisecond); n != 1 {
		t.Fatalf("Advance(1ms) = %d, want 1 after reaching 30ms", n)
	}
	if n := f.Advance(75 * time.Millisecond); n != 2 {
		t.Fatalf("Advance(75ms) = %d, want 2", n)
	}
	// 15ms left over from the previous call.
	if n := f.Advance(15 * time.Millisecond); n != 1 {
		t.Fatalf("Advance(15ms) = %d, want 1", n)
	}
	if c.n != 4 || f.Ticks() != 4 {
		t.Fatalf("target ticked %d times, Ticks() = %d, want 4", c.n, f.Ticks())
	}
}

func TestAdvanceIsCapped(t *testing.T) {
	c := &counter{}
	f := NewFixedStep(30*time.Millisecond, 5, c)
	f.Start()

	if n := f.Advance(time.Second); n != 5 {
		t.Fatalf("Advance(1s) = %d, want capped at 5", n)
	}
	// The backlog was dropped.
	if n := f.Advance(10 * time.Millisecond); n != 0 {
		t.Fatalf("Advance(10ms) after cap = %d, want 0", n)
	}
}

func TestStoppedSchedulerDropsTime(t *testing.T) {
	c := &counter{}
	f := NewFixedStep(30*time.Millisecond, 5, c)

	if n := f.Advance(100 * time.Millisecond); n != 0 || c.n != 0 {
		t.Fatalf("stopped scheduler ran %d ticks", n)
	}

	f.Start()
	f.Advance(20 * time.Millisecond)
	f.Stop()
	if f.Running() {
		t.Fatal("Running() = true after Stop")
	}
	f.Start()
	if n := f.Advance(20 * time.Millisecond); n != 0 {
		t.Fatalf("partial interval survived Stop: ran %d ticks", n)
	}
}

func TestStepAndSetTarget(t *testing.T) {
	a, b := &counter{}, &counter{}
	f := NewFixedStep(30*time.Millisecond, 1, a)

	f.Step()
	f.SetTarget(b)
	f.Step()
	f.Step()
	if a.n != 1 || b.n != 2 || f.Ticks() != 3 {
		t.Fatalf("a=%d b=%d ticks=%d, want 1/2/3", a.n, b.n, f.Ticks())
	}
}
