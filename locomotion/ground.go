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

// GroundState is the result of the latest probe.
type GroundState struct {
	Grounded       bool
	LastGroundedAt time.Duration
	CoyoteWindow   time.Duration
	// EverGrounded is false until the first successful probe; a body that
	// has never touched ground has no coyote window.
	EverGrounded bool
}

// CoyoteRemaining is max(0, window - (now - LastGroundedAt)), and 0 while
// grounded.
func (s GroundState) CoyoteRemaining(now time.Duration) time.Duration {
	if s.Grounded || !s.EverGrounded {
		return 0
	}
	rem := s.CoyoteWindow - (now - s.LastGroundedAt)
	if rem < 0 {
		return 0
	}
	return rem
}

// GroundSensor probes below the body once per logic tick.
type GroundSensor struct {
	cfg        tuning.Ground
	clock      common.Clock
	body       Body
	prober     Prober
	halfHeight float64
	events     *event.Channel

	state       GroundState
	coyoteSpent bool
	// a jump taken while grounded spends the window of the liftoff it causes
	liftoffSpent bool

	missing  bool
	disabled bool
	warned   bool

	Debug bool
}

func NewGroundSensor(cfg tuning.Ground, clock common.Clock, body Body, prober Prober, halfHeight float64, events *event.Channel) *GroundSensor {
	g := &GroundSensor{
		clock:      clock,
		body:       body,
		prober:     prober,
		halfHeight: halfHeight,
		events:     events,
	}
	switch {
	case clock == nil:
		g.fault("missing clock")
		g.missing = true
	case body == nil:
		g.fault("missing body")
		g.missing = true
	case prober == nil:
		g.fault("missing prober")
		g.missing = true
	}
	g.SetConfig(cfg)
	return g
}

// SetConfig swaps the probe tunables. A degenerate probe disables the sensor
// until a usable config arrives.
func (g *GroundSensor) SetConfig(cfg tuning.Ground) {
	if g == nil {
		return
	}
	g.cfg = cfg
	g.state.CoyoteWindow = cfg.CoyoteTime
	if g.missing {
		return
	}
	if reason := degenerateProbe(cfg, g.halfHeight); reason != "" {
		g.fault(reason)
		g.disabled = true
		g.state.Grounded = false
		g.coyoteSpent = true
		g.liftoffSpent = false
		return
	}
	g.disabled = false
}

func degenerateProbe(cfg tuning.Ground, halfHeight float64) string {
	switch {
	case math.IsNaN(cfg.ProbeDistance) || math.IsInf(cfg.ProbeDistance, 0) || cfg.ProbeDistance <= 0:
		return "probe distance must be positive"
	case cfg.UseCircleCast && !(cfg.ProbeRadius > 0):
		return "circle cast needs a positive radius"
	case cfg.Mask == 0:
		return "probe mask is empty"
	case !common.IsFinite(cfg.Offset.Vector()):
		return "probe offset is not finite"
	case math.IsNaN(halfHeight) || halfHeight < 0:
		return "body half height is invalid"
	}
	return ""
}

func (g *GroundSensor) fault(reason string) {
	if g.warned {
		return
	}
	g.warned = true
	log.Printf("GroundSensor: disabled, never grounded: %s", reason)
}

// Enabled reports whether probes can ever report ground.
func (g *GroundSensor) Enabled() bool {
	return g != nil && !g.missing && !g.disabled
}

// GroundCheckPosition is where the probe starts: the bottom of the body plus
// the configured offset.
func (g *GroundSensor) GroundCheckPosition() cp.Vector {
	if g == nil || g.body == nil {
		return cp.Vector{}
	}
	pos := g.body.Position()
	off := g.cfg.Offset.Vector()
	return cp.Vector{X: pos.X + off.X, Y: pos.Y - g.halfHeight + off.Y}
}

// Probe casts down and updates the ground state. GroundChanged is emitted on
// transitions only.
func (g *GroundSensor) Probe() GroundState {
	if g == nil {
		return GroundState{}
	}
	if !g.Enabled() {
		return g.state
	}

	radius := 0.0
	if g.cfg.UseCircleCast {
		radius = g.cfg.ProbeRadius
	}
	hit := g.prober.CastDown(g.GroundCheckPosition(), g.cfg.ProbeDistance, radius, g.cfg.Mask)
	now := g.clock.Now()

	was := g.state.Grounded
	if hit == was {
		return g.state
	}

	var since time.Duration
	if hit {
		if g.state.EverGrounded {
			since = now - g.state.LastGroundedAt
		}
		g.state.EverGrounded = true
		g.coyoteSpent = false
		g.liftoffSpent = false
	} else {
		g.state.LastGroundedAt = now
		g.coyoteSpent = g.liftoffSpent
		g.liftoffSpent = false
	}
	g.state.Grounded = hit

	if g.Debug {
		log.Printf("GroundSensor: grounded %v -> %v at %v", was, hit, now)
	}
	g.events.PublishGroundChanged(event.GroundChanged{
		Grounded:      hit,
		WasGrounded:   was,
		Position:      g.body.Position(),
		SinceGrounded: since,
	})
	return g.state
}

// State returns the last probe result without probing.
func (g *GroundSensor) State() GroundState {
	if g == nil {
		return GroundState{}
	}
	return g.state
}

func (g *GroundSensor) IsGrounded() bool {
	return g != nil && g.state.Grounded
}

func (g *GroundSensor) CoyoteRemaining() time.Duration {
	if !g.Enabled() || g.coyoteSpent {
		return 0
	}
	return g.state.CoyoteRemaining(g.clock.Now())
}

func (g *GroundSensor) CanPerformGroundAction() bool {
	return g.IsGrounded() || g.CoyoteRemaining() > 0
}

// ConsumeCoyote spends the coyote window. While grounded it marks the next
// liftoff so leaving the ground opens no window.
func (g *GroundSensor) ConsumeCoyote() {
	if g == nil {
		return
	}
	if g.state.Grounded {
		g.liftoffSpent = true
		return
	}
	g.coyoteSpent = true
}
