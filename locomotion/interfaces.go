// Package locomotion turns sampled input into body velocity changes, gated by
// ground contact, an energy pool and ability cooldowns.
package locomotion

import (
	"time"

	"github.com/jakecoffman/cp"
)

// Body is the physics body a character drives.
type Body interface {
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	Position() cp.Vector
}

// Prober casts toward -Y and reports whether anything in mask was touched.
// radius 0 means a ray.
type Prober interface {
	CastDown(origin cp.Vector, distance, radius float64, mask uint) bool
}

// StatProvider supplies the current max energy. It is polled every logic tick.
type StatProvider interface {
	MaxEnergy() float64
}

type GroundDetector interface {
	IsGrounded() bool
	CoyoteRemaining() time.Duration
	CanPerformGroundAction() bool
	// ConsumeCoyote closes the grace window early, once a jump has used it.
	ConsumeCoyote()
}

type EnergyUser interface {
	HasEnergy(cost float64) bool
	Consume(cost float64) bool
	ConsumeAs(consumer string, cost float64) bool
	Current() float64
}

// Movable is the velocity surface abilities write through.
type Movable interface {
	SetInput(x float64)
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	ApplyImpulse(v cp.Vector)
	Jump(force float64)
	// Override suspends steering for d so a burst is not damped.
	Override(d time.Duration)
	Position() cp.Vector
	IsGrounded() bool
}

type Dashable interface {
	SetLastMoveDirection(v cp.Vector)
	Dash(input cp.Vector) bool
	CanDash() bool
	CooldownRemaining() time.Duration
}

var (
	_ GroundDetector = (*GroundSensor)(nil)
	_ EnergyUser     = (*EnergyPool)(nil)
	_ Movable        = (*Actuator)(nil)
	_ Dashable       = (*Dash)(nil)
)
