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

// Dash is a cooldown-gated burst paid for from the energy pool.
type Dash struct {
	cfg    tuning.Dash
	cost   float64
	clock  common.Clock
	mover  Movable
	energy EnergyUser
	ground GroundDetector
	events *event.Channel

	cooldownRemaining time.Duration
	lastMoveDirection cp.Vector
	lastDashAt        time.Duration
	dashed            bool

	disabled bool

	Debug bool
}

// NewDash wires a dash. ground may be nil, in which case air dashes are never
// refused.
func NewDash(cfg tuning.Dash, cost float64, clock common.Clock, mover Movable, energy EnergyUser, ground GroundDetector, events *event.Channel) *Dash {
	d := &Dash{
		cfg:    cfg,
		cost:   cost,
		clock:  clock,
		mover:  mover,
		energy: energy,
		ground: ground,
		events: events,
	}
	switch {
	case clock == nil:
		d.fault("missing clock")
	case mover == nil:
		d.fault("missing actuator")
	case cost > 0 && energy == nil:
		d.fault("dash has a cost but no energy pool")
	}
	return d
}

func (d *Dash) fault(reason string) {
	log.Printf("Dash: disabled: %s", reason)
	d.disabled = true
}

func (d *Dash) SetConfig(cfg tuning.Dash, cost float64) {
	if d == nil {
		return
	}
	d.cfg = cfg
	if cost > 0 && d.energy == nil {
		log.Printf("Dash: ignoring cost %.2f without an energy pool", cost)
		cost = 0
	}
	d.cost = cost
}

// SetLastMoveDirection remembers a non-zero movement direction as a unit
// vector. Zero and non-finite vectors are ignored.
func (d *Dash) SetLastMoveDirection(v cp.Vector) {
	if d == nil {
		return
	}
	if u, ok := unit(v); ok {
		d.lastMoveDirection = u
	}
}

func (d *Dash) LastMoveDirection() cp.Vector {
	if d == nil {
		return cp.Vector{}
	}
	return d.lastMoveDirection
}

func unit(v cp.Vector) (cp.Vector, bool) {
	if !common.IsFinite(v) {
		return cp.Vector{}, false
	}
	l := v.Length()
	if l <= 1e-6 {
		return cp.Vector{}, false
	}
	return v.Mult(1 / l), true
}

// ResolveDirection picks the dash direction: input when preferred and above
// the threshold, then the last movement direction, then the default.
func (d *Dash) ResolveDirection(input cp.Vector) cp.Vector {
	inputOK := common.IsFinite(input) && input.Length() > d.cfg.InputThreshold
	if d.cfg.PreferInput && inputOK {
		if u, ok := unit(input); ok {
			return u
		}
	}
	if u, ok := unit(d.lastMoveDirection); ok {
		return u
	}
	if inputOK {
		if u, ok := unit(input); ok {
			return u
		}
	}
	if u, ok := unit(d.cfg.DefaultDirection.Vector()); ok {
		return u
	}
	return cp.Vector{X: 1}
}

func (d *Dash) CooldownRemaining() time.Duration {
	if d == nil || d.cooldownRemaining < 0 {
		return 0
	}
	return d.cooldownRemaining
}

// CanDash is true when the cooldown is over and the cost is affordable.
func (d *Dash) CanDash() bool {
	if d == nil || d.disabled || d.cooldownRemaining > 0 {
		return false
	}
	if !d.cfg.AllowAirDash && d.ground != nil && !d.ground.IsGrounded() {
		return false
	}
	if d.cost > 0 {
		return d.energy.HasEnergy(d.cost)
	}
	return true
}

// Dash executes a burst toward the resolved direction. A refused dash returns
// false and changes nothing.
func (d *Dash) Dash(input cp.Vector) bool {
	if !d.CanDash() {
		if d != nil && d.Debug {
			log.Printf("Dash: refused (cooldown %v, energy ok %v)", d.CooldownRemaining(), d.cost == 0 || (d.energy != nil && d.energy.HasEnergy(d.cost)))
		}
		return false
	}
	if d.cost > 0 && !d.energy.ConsumeAs("dash", d.cost) {
		return false
	}

	dir := d.ResolveDirection(input)
	vel := dir.Mult(d.cfg.Force)
	if d.cfg.PreserveVerticalVelocity {
		vel.Y = d.mover.Velocity().Y
	}
	d.mover.SetVelocity(vel)
	d.mover.Override(d.cfg.Duration)

	d.cooldownRemaining = d.cfg.Cooldown
	d.lastDashAt = d.clock.Now()
	d.dashed = true

	remaining := 0.0
	if d.energy != nil {
		remaining = d.energy.Current()
	}
	d.events.PublishDashed(event.Dashed{
		Direction:       dir,
		Force:           d.cfg.Force,
		Velocity:        d.mover.Velocity(),
		Position:        d.mover.Position(),
		EnergyConsumed:  d.cost,
		EnergyRemaining: remaining,
	})
	return true
}

// Tick decays the cooldown.
func (d *Dash) Tick(dt time.Duration) {
	if d == nil || dt <= 0 || d.cooldownRemaining <= 0 {
		return
	}
	d.cooldownRemaining -= dt
	if d.cooldownRemaining < 0 {
		d.cooldownRemaining = 0
	}
}

// ResetCooldown clears the cooldown. For tests and cheats.
func (d *Dash) ResetCooldown() {
	if d == nil {
		return
	}
	d.cooldownRemaining = 0
}

// TimeSinceLastDash reports the time since the last dash, and false when
// there has not been one.
func (d *Dash) TimeSinceLastDash() (time.Duration, bool) {
	if d == nil || !d.dashed || d.clock == nil {
		return 0, false
	}
	return d.clock.Now() - d.lastDashAt, true
}

// IsDashing reports whether the burst's override window is still open.
func (d *Dash) IsDashing() bool {
	since, ok := d.TimeSinceLastDash()
	return ok && since < d.cfg.Duration
}

// CooldownFraction is the share of the cooldown still to run, in [0, 1].
func (d *Dash) CooldownFraction() float64 {
	if d == nil || d.cfg.Cooldown <= 0 {
		return 0
	}
	return math.Min(1, float64(d.CooldownRemaining())/float64(d.cfg.Cooldown))
}
