// Package ticker drives a game at a fixed timestep independent of the host's
// frame rate.
package ticker

import "time"

// Stepper is advanced one fixed step at a time.
type Stepper interface {
	Tick()
}

// FixedStep accumulates wall time and runs its target once per interval.
// It is not safe for concurrent use.
type FixedStep struct {
	interval time.Duration
	maxSteps int
	target   Stepper

	acc     time.Duration
	running bool
	ticks   uint64
}

// NewFixedStep returns a stopped scheduler. maxSteps caps how many ticks one
// Advance call may run; values below 1 mean 1.
func NewFixedStep(interval time.Duration, maxSteps int, target Stepper) *FixedStep {
	if interval <= 0 {
		panic("ticker: non-positive interval")
	}
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &FixedStep{interval: interval, maxSteps: maxSteps, target: target}
}

// Start resumes ticking. Time that passed while stopped is not replayed.
func (f *FixedStep) Start() {
	f.running = true
}

// Stop pauses ticking and drops any partial interval.
func (f *FixedStep) Stop() {
	f.running = false
	f.acc = 0
}

// Running reports whether Advance runs ticks.
func (f *FixedStep) Running() bool { return f.running }

// Ticks returns the number of ticks run so far.
func (f *FixedStep) Ticks() uint64 { return f.ticks }

// SetTarget swaps the stepped object, e.g. after a restart. The accumulated
// time carries over.
func (f *FixedStep) SetTarget(target Stepper) {
	f.target = target
}

// Advance adds elapsed time and runs every whole interval it covers, up to
// the per-call cap. Time beyond the cap is discarded so a stalled host
// catches up at most maxSteps ticks. It returns the number of ticks run.
func (f *FixedStep) Advance(elapsed time.Duration) int {
	if !f.running || elapsed <= 0 {
		return 0
	}
	f.acc += elapsed

	n := 0
	for f.acc >= f.interval {
		if n == f.maxSteps {
			f.acc = 0
			break
		}
		f.acc -= f.interval
		f.Step()
		n++
	}
	return n
}

// Step runs exactly one tick regardless of the accumulator or running state.
func (f *FixedStep) Step() {
	f.ticks++
	if f.target != nil {
		f.target.Tick()
	}
}
