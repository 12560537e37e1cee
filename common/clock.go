package common

import "time"

// Clock reports monotonic simulation time.
type Clock interface {
	Now() time.Duration
}

// SimClock is a manually advanced Clock. The owning loop advances it once per
// logic tick; every deadline in the simulation is measured against it.
type SimClock struct {
	now time.Duration
}

func NewSimClock() *SimClock {
	return &SimClock{}
}

func (c *SimClock) Now() time.Duration {
	if c == nil {
		return 0
	}
	return c.now
}

// Advance moves the clock forward. Negative deltas are ignored so time never
// runs backwards.
func (c *SimClock) Advance(dt time.Duration) {
	if c == nil || dt <= 0 {
		return
	}
	c.now += dt
}

// Seconds converts a duration to float seconds.
func Seconds(d time.Duration) float64 {
	return d.Seconds()
}

// DurationOf converts float seconds to a duration; NaN and negatives map to 0.
func DurationOf(seconds float64) time.Duration {
	seconds = Finite(seconds)
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// FixedStep turns variable frame deltas into a whole number of fixed physics
// steps. Leftover time carries into the next frame.
type FixedStep struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
}

const defaultMaxSteps = 5

func NewFixedStep(step time.Duration, maxSteps int) *FixedStep {
	if step <= 0 {
		step = time.Second / 60
	}
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}
	return &FixedStep{step: step, maxSteps: maxSteps}
}

// Step returns the fixed physics delta.
func (f *FixedStep) Step() time.Duration {
	if f == nil {
		return 0
	}
	return f.step
}

// Accumulate adds a frame delta and returns how many fixed steps are due.
// When more than maxSteps are owed the excess is dropped rather than letting
// a slow frame snowball.
func (f *FixedStep) Accumulate(dt time.Duration) int {
	if f == nil || dt <= 0 {
		return 0
	}
	f.acc += dt
	n := int(f.acc / f.step)
	f.acc -= time.Duration(n) * f.step
	if n > f.maxSteps {
		n = f.maxSteps
		f.acc = 0
	}
	return n
}

// Alpha is the fraction of a step still sitting in the accumulator.
func (f *FixedStep) Alpha() float64 {
	if f == nil || f.step <= 0 {
		return 0
	}
	return float64(f.acc) / float64(f.step)
}
