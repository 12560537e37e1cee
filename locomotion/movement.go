package locomotion

import (
	"log"
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/tuning"
)

// MaxVelocity bounds each velocity component written to the body.
const MaxVelocity = 1e4

// Actuator owns horizontal steering. Abilities write velocity through it.
type Actuator struct {
	cfg    tuning.Movement
	clock  common.Clock
	body   Body
	ground GroundDetector
	events *event.Channel

	input         float64
	facing        float64
	overrideUntil time.Duration
	overridden    bool

	disabled bool
}

func NewActuator(cfg tuning.Movement, clock common.Clock, body Body, ground GroundDetector, events *event.Channel) *Actuator {
	a := &Actuator{
		cfg:    cfg,
		clock:  clock,
		body:   body,
		ground: ground,
		events: events,
	}
	switch {
	case body == nil:
		log.Printf("Actuator: missing body, movement disabled")
		a.disabled = true
	case clock == nil:
		log.Printf("Actuator: missing clock, movement disabled")
		a.disabled = true
	case ground == nil:
		log.Printf("Actuator: missing ground detector, treating body as airborne")
	}
	return a
}

func (a *Actuator) SetConfig(cfg tuning.Movement) {
	if a == nil {
		return
	}
	a.cfg = cfg
}

// SetInput stores the horizontal input clamped to [-1, 1].
func (a *Actuator) SetInput(x float64) {
	if a == nil {
		return
	}
	a.input = common.Clamp(common.Finite(x), -1, 1)
	if math.Abs(a.input) > a.cfg.Deadzone {
		a.facing = common.Sign(a.input)
	}
}

func (a *Actuator) Input() float64 {
	if a == nil {
		return 0
	}
	return a.input
}

// Facing is the sign of the last input outside the deadzone, or 0 before any.
func (a *Actuator) Facing() float64 {
	if a == nil {
		return 0
	}
	return a.facing
}

func (a *Actuator) IsGrounded() bool {
	return a != nil && a.ground != nil && a.ground.IsGrounded()
}

func (a *Actuator) Velocity() cp.Vector {
	if a == nil || a.disabled {
		return cp.Vector{}
	}
	return sanitizeVelocity(a.body.Velocity())
}

func (a *Actuator) Position() cp.Vector {
	if a == nil || a.body == nil {
		return cp.Vector{}
	}
	return a.body.Position()
}

func (a *Actuator) SetVelocity(v cp.Vector) {
	if a == nil || a.disabled {
		return
	}
	a.body.SetVelocity(sanitizeVelocity(v))
}

// ApplyImpulse adds v to the current velocity.
func (a *Actuator) ApplyImpulse(v cp.Vector) {
	if a == nil || a.disabled {
		return
	}
	a.SetVelocity(a.Velocity().Add(common.FiniteVec(v)))
}

// Jump writes vy = force and keeps vx.
func (a *Actuator) Jump(force float64) {
	if a == nil || a.disabled {
		return
	}
	v := a.Velocity()
	v.Y = force
	a.SetVelocity(v)
}

// Override suspends steering and the grounded clamp until now+d.
func (a *Actuator) Override(d time.Duration) {
	if a == nil || a.disabled || d <= 0 {
		return
	}
	until := a.clock.Now() + d
	if !a.overridden || until > a.overrideUntil {
		a.overrideUntil = until
	}
	a.overridden = true
}

// Overridden reports whether steering is currently suspended.
func (a *Actuator) Overridden() bool {
	if a == nil || !a.overridden || a.clock == nil {
		return false
	}
	return a.clock.Now() < a.overrideUntil
}

// Tick runs one steering pass and emits Moved. Vertical velocity is never
// changed here.
func (a *Actuator) Tick(dt time.Duration) {
	if a == nil || a.disabled {
		return
	}
	v := a.Velocity()
	grounded := a.IsGrounded()

	if !a.Overridden() && dt > 0 {
		target := a.input * a.cfg.MoveSpeed
		rate := a.cfg.Deceleration
		active := math.Abs(a.input) > a.cfg.Deadzone
		if active {
			rate = a.cfg.Acceleration
		}
		maxDelta := rate * dt.Seconds()

		if grounded {
			v.X = common.MoveTowards(v.X, target, maxDelta)
		} else if active {
			v.X = airSteer(v.X, target, a.cfg.AirControlStrength, maxDelta)
		}

		if grounded && a.cfg.ClampGroundedVelocity && math.Abs(v.X) > a.cfg.MoveSpeed {
			v.X = common.Sign(v.X) * a.cfg.MoveSpeed
		}
		a.SetVelocity(v)
	}

	a.events.PublishMoved(event.Moved{
		Velocity: a.Velocity(),
		Position: a.Position(),
		Input:    a.input,
		Grounded: grounded,
	})
}

// airSteer nudges vx toward vx+target*strength by at most maxDelta*strength.
// Held input never pushes speed past target, but excess speed already
// carried (from a dash) is left alone.
func airSteer(vx, target, strength, maxDelta float64) float64 {
	strength = common.Clamp(common.Finite(strength), 0, 1)
	if strength == 0 || target == 0 {
		return vx
	}
	next := common.MoveTowards(vx, vx+target*strength, maxDelta*strength)
	switch {
	case target > 0 && next > target:
		return math.Max(vx, target)
	case target < 0 && next < target:
		return math.Min(vx, target)
	}
	return next
}

func sanitizeVelocity(v cp.Vector) cp.Vector {
	v = common.FiniteVec(v)
	v.X = common.Clamp(v.X, -MaxVelocity, MaxVelocity)
	v.Y = common.Clamp(v.Y, -MaxVelocity, MaxVelocity)
	return v
}
