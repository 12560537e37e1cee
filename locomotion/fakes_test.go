package locomotion

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/tuning"
)

type fakeBody struct {
	vel cp.Vector
	pos cp.Vector
}

func (b *fakeBody) Velocity() cp.Vector     { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) { b.vel = v }
func (b *fakeBody) Position() cp.Vector     { return b.pos }

type fakeProber struct {
	hit      bool
	calls    int
	origin   cp.Vector
	distance float64
	radius   float64
	mask     uint
}

func (p *fakeProber) CastDown(origin cp.Vector, distance, radius float64, mask uint) bool {
	p.calls++
	p.origin = origin
	p.distance = distance
	p.radius = radius
	p.mask = mask
	return p.hit
}

type fakeStats struct {
	max float64
}

func (s *fakeStats) MaxEnergy() float64 { return s.max }

type fakeGround struct {
	grounded bool
	coyote   time.Duration
	spent    bool
}

func (g *fakeGround) IsGrounded() bool { return g.grounded }

func (g *fakeGround) CoyoteRemaining() time.Duration {
	if g.grounded || g.spent {
		return 0
	}
	return g.coyote
}

func (g *fakeGround) CanPerformGroundAction() bool {
	return g.grounded || g.CoyoteRemaining() > 0
}

func (g *fakeGround) ConsumeCoyote() { g.spent = true }

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// rig is a Character on fakes, grounded by default.
type rig struct {
	clock  *common.SimClock
	events *event.Channel
	rec    *event.Recorder
	body   *fakeBody
	prober *fakeProber
	c      *Character
}

func newRig(cfg tuning.Config) *rig {
	r := &rig{
		clock:  common.NewSimClock(),
		events: event.NewChannel(),
		body:   &fakeBody{pos: cp.Vector{Y: 0.5}},
		prober: &fakeProber{hit: true},
	}
	r.rec = event.Record(r.events)
	r.c = NewCharacter(cfg, Deps{
		Clock:      r.clock,
		Events:     r.events,
		Body:       r.body,
		Prober:     r.prober,
		HalfHeight: 0.5,
	})
	return r
}

// frame advances the clock, runs the logic tick and one physics step.
func (r *rig) frame(dt time.Duration, in Intent) {
	r.clock.Advance(dt)
	r.c.Sample(in)
	r.c.LogicTick(dt)
	r.c.PhysicsTick(dt)
}
