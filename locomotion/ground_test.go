package locomotion

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/tuning"
)

func newSensor(cfg tuning.Ground) (*GroundSensor, *common.SimClock, *fakeProber, *event.Recorder) {
	clock := common.NewSimClock()
	prober := &fakeProber{}
	ch := event.NewChannel()
	rec := event.Record(ch)
	body := &fakeBody{pos: cp.Vector{X: 2, Y: 1}}
	return NewGroundSensor(cfg, clock, body, prober, 0.5, ch), clock, prober, rec
}

func TestGroundSensorEmitsOnTransitionsOnly(t *testing.T) {
	g, clock, prober, rec := newSensor(tuning.Default().Ground)

	prober.hit = true
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Millisecond)
		g.Probe()
	}
	if !g.IsGrounded() {
		t.Fatalf("expected grounded")
	}
	if len(rec.GroundChanged) != 1 {
		t.Fatalf("expected 1 transition event, got %d", len(rec.GroundChanged))
	}

	prober.hit = false
	clock.Advance(10 * time.Millisecond)
	state := g.Probe()
	g.Probe()
	if state.Grounded || state.LastGroundedAt != 60*time.Millisecond {
		t.Fatalf("unexpected state after leaving ground: %+v", state)
	}
	if len(rec.GroundChanged) != 2 {
		t.Fatalf("expected 2 transition events, got %d", len(rec.GroundChanged))
	}

	clock.Advance(40 * time.Millisecond)
	prober.hit = true
	g.Probe()
	last := rec.GroundChanged[len(rec.GroundChanged)-1]
	if !last.Grounded || last.WasGrounded || last.SinceGrounded != 40*time.Millisecond {
		t.Fatalf("unexpected landing event %+v", last)
	}
}

func TestCoyoteWindow(t *testing.T) {
	cfg := tuning.Default().Ground
	cfg.CoyoteTime = 150 * time.Millisecond
	g, clock, prober, _ := newSensor(cfg)

	prober.hit = true
	g.Probe()
	if g.CoyoteRemaining() != 0 {
		t.Fatalf("coyote must be 0 while grounded")
	}

	prober.hit = false
	clock.Advance(time.Second)
	g.Probe()
	for off := time.Duration(0); off <= 200*time.Millisecond; off += 10 * time.Millisecond {
		want := off < cfg.CoyoteTime
		if got := g.CanPerformGroundAction(); got != want {
			t.Fatalf("at +%v: CanPerformGroundAction = %v, want %v", off, got, want)
		}
		if want && g.CoyoteRemaining() != cfg.CoyoteTime-off {
			t.Fatalf("at +%v: remaining %v", off, g.CoyoteRemaining())
		}
		clock.Advance(10 * time.Millisecond)
		g.Probe()
	}
}

func TestCoyoteNeverGroundedAndConsumed(t *testing.T) {
	g, clock, prober, _ := newSensor(tuning.Default().Ground)
	g.Probe()
	if g.CanPerformGroundAction() {
		t.Fatalf("a body that never touched ground has no coyote window")
	}

	prober.hit = true
	g.Probe()
	prober.hit = false
	clock.Advance(10 * time.Millisecond)
	g.Probe()
	if !g.CanPerformGroundAction() {
		t.Fatalf("expected coyote window right after leaving ground")
	}
	g.ConsumeCoyote()
	if g.CanPerformGroundAction() || g.CoyoteRemaining() != 0 {
		t.Fatalf("consumed coyote must close the window")
	}

	prober.hit = true
	g.Probe()
	prober.hit = false
	clock.Advance(10 * time.Millisecond)
	g.Probe()
	if !g.CanPerformGroundAction() {
		t.Fatalf("landing must restore the coyote window")
	}
}

func TestGroundProbeShape(t *testing.T) {
	cases := []struct {
		name       string
		circle     bool
		radius     float64
		offset     tuning.Vec2
		wantOrigin cp.Vector
		wantRadius float64
	}{
		{"ray", false, 0.05, tuning.Vec2{}, cp.Vector{X: 2, Y: 0.5}, 0},
		{"circle", true, 0.05, tuning.Vec2{}, cp.Vector{X: 2, Y: 0.5}, 0.05},
		{"offset", false, 0, tuning.Vec2{X: 0.25, Y: 0.1}, cp.Vector{X: 2.25, Y: 0.6}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := tuning.Default().Ground
			cfg.UseCircleCast = c.circle
			cfg.ProbeRadius = c.radius
			cfg.Offset = c.offset
			g, _, prober, _ := newSensor(cfg)
			g.Probe()
			if prober.calls != 1 {
				t.Fatalf("expected one cast, got %d", prober.calls)
			}
			if !near(prober.origin.X, c.wantOrigin.X, 1e-9) || !near(prober.origin.Y, c.wantOrigin.Y, 1e-9) {
				t.Fatalf("origin %v, want %v", prober.origin, c.wantOrigin)
			}
			if prober.radius != c.wantRadius || prober.distance != cfg.ProbeDistance || prober.mask != cfg.Mask {
				t.Fatalf("unexpected cast %+v", prober)
			}
			if g.GroundCheckPosition() != prober.origin {
				t.Fatalf("GroundCheckPosition disagrees with probe origin")
			}
		})
	}
}

func TestGroundSensorDegrades(t *testing.T) {
	zeroDistance := tuning.Default().Ground
	zeroDistance.ProbeDistance = 0
	noRadius := tuning.Default().Ground
	noRadius.UseCircleCast = true
	noRadius.ProbeRadius = 0
	noMask := tuning.Default().Ground
	noMask.Mask = 0

	cases := []struct {
		name   string
		cfg    tuning.Ground
		body   Body
		prober Prober
	}{
		{"nil body", tuning.Default().Ground, nil, &fakeProber{hit: true}},
		{"nil prober", tuning.Default().Ground, &fakeBody{}, nil},
		{"zero distance", zeroDistance, &fakeBody{}, &fakeProber{hit: true}},
		{"circle without radius", noRadius, &fakeBody{}, &fakeProber{hit: true}},
		{"empty mask", noMask, &fakeBody{}, &fakeProber{hit: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGroundSensor(c.cfg, common.NewSimClock(), c.body, c.prober, 0.5, nil)
			if g.Enabled() {
				t.Fatalf("expected sensor to be disabled")
			}
			g.Probe()
			if g.IsGrounded() || g.CanPerformGroundAction() {
				t.Fatalf("disabled sensor must never be grounded")
			}
		})
	}
}

func TestGroundSensorReconfigureRecovers(t *testing.T) {
	cfg := tuning.Default().Ground
	cfg.ProbeDistance = 0
	g, _, prober, _ := newSensor(cfg)
	prober.hit = true
	g.Probe()
	if g.IsGrounded() {
		t.Fatalf("degenerate probe must not report ground")
	}
	g.SetConfig(tuning.Default().Ground)
	g.Probe()
	if !g.IsGrounded() {
		t.Fatalf("expected a usable config to re-enable probing")
	}
}

func TestGroundSensorDisableClosesCoyote(t *testing.T) {
	g, clock, prober, _ := newSensor(tuning.Default().Ground)
	prober.hit = true
	g.Probe()
	clock.Advance(10 * time.Millisecond)

	bad := tuning.Default().Ground
	bad.ProbeDistance = 0
	g.SetConfig(bad)
	if g.IsGrounded() || g.CanPerformGroundAction() || g.CoyoteRemaining() != 0 {
		t.Fatalf("disabled sensor must allow no ground action")
	}

	g.SetConfig(tuning.Default().Ground)
	prober.hit = false
	g.Probe()
	if g.CanPerformGroundAction() {
		t.Fatalf("stale grounding from before the disable must not open coyote")
	}
}

func TestGroundSensorConsumeWhileGrounded(t *testing.T) {
	g, clock, prober, _ := newSensor(tuning.Default().Ground)
	prober.hit = true
	g.Probe()

	g.ConsumeCoyote()
	if !g.IsGrounded() || !g.CanPerformGroundAction() {
		t.Fatalf("consuming while grounded must not affect the grounded state")
	}

	prober.hit = false
	clock.Advance(10 * time.Millisecond)
	g.Probe()
	if g.CoyoteRemaining() != 0 {
		t.Fatalf("liftoff after a consume must have no coyote, got %v", g.CoyoteRemaining())
	}

	prober.hit = true
	g.Probe()
	prober.hit = false
	clock.Advance(10 * time.Millisecond)
	g.Probe()
	if g.CoyoteRemaining() <= 0 {
		t.Fatalf("landing must clear the pending consume")
	}
}
