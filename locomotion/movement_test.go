package locomotion

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/tuning"
)

func movementConfig() tuning.Movement {
	return tuning.Movement{
		MoveSpeed:             5,
		Acceleration:          10,
		Deceleration:          20,
		AirControlStrength:    0.1,
		Deadzone:              0.1,
		ClampGroundedVelocity: true,
	}
}

func newActuator(grounded bool) (*Actuator, *fakeBody, *fakeGround, *common.SimClock, *event.Recorder) {
	clock := common.NewSimClock()
	body := &fakeBody{}
	ground := &fakeGround{grounded: grounded}
	ch := event.NewChannel()
	rec := event.Record(ch)
	return NewActuator(movementConfig(), clock, body, ground, ch), body, ground, clock, rec
}

func TestGroundedSteeringNeverOvershoots(t *testing.T) {
	a, body, _, _, _ := newActuator(true)
	a.SetInput(1)
	want := []float64{1, 2, 3, 4, 5, 5, 5}
	for i, w := range want {
		a.Tick(100 * time.Millisecond)
		if body.vel.X != w {
			t.Fatalf("tick %d: vx = %v, want %v", i, body.vel.X, w)
		}
	}

	a.SetInput(0)
	a.Tick(100 * time.Millisecond)
	if body.vel.X != 3 {
		t.Fatalf("expected deceleration rate inside deadzone, got %v", body.vel.X)
	}
	a.Tick(time.Second)
	if body.vel.X != 0 {
		t.Fatalf("expected stop without overshoot, got %v", body.vel.X)
	}
}

func TestSteeringLeavesVerticalAlone(t *testing.T) {
	for _, grounded := range []bool{true, false} {
		a, body, _, _, _ := newActuator(grounded)
		body.vel = cp.Vector{X: 0, Y: -7.5}
		a.SetInput(-1)
		a.Tick(100 * time.Millisecond)
		if body.vel.Y != -7.5 {
			t.Fatalf("grounded=%v: vy changed to %v", grounded, body.vel.Y)
		}
	}
}

func TestAirSteering(t *testing.T) {
	cases := []struct {
		name  string
		start float64
		input float64
		want  float64
	}{
		{"gentle authority", 0, 1, 0.1},
		{"no input keeps momentum", 3, 0, 3},
		{"dash excess preserved", 18, 1, 18},
		{"capped at target", 4.95, 1, 5},
		{"reversing is slow", 18, -1, 17.9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, body, _, _, _ := newActuator(false)
			body.vel.X = c.start
			a.SetInput(c.input)
			a.Tick(100 * time.Millisecond)
			if !near(body.vel.X, c.want, 1e-9) {
				t.Fatalf("vx = %v, want %v", body.vel.X, c.want)
			}
		})
	}
}

func TestGroundedClamp(t *testing.T) {
	a, body, ground, _, _ := newActuator(false)
	body.vel.X = 12
	a.Tick(10 * time.Millisecond)
	if body.vel.X != 12 {
		t.Fatalf("airborne excess must not be clamped, got %v", body.vel.X)
	}
	ground.grounded = true
	a.SetInput(1)
	a.Tick(10 * time.Millisecond)
	if body.vel.X != 5 {
		t.Fatalf("expected clamp to move speed on landing, got %v", body.vel.X)
	}

	cfg := movementConfig()
	cfg.ClampGroundedVelocity = false
	a.SetConfig(cfg)
	body.vel.X = -12
	a.SetInput(-1)
	a.Tick(100 * time.Millisecond)
	if body.vel.X != -11 {
		t.Fatalf("without clamp the excess decays at the steering rate, got %v", body.vel.X)
	}
}

func TestOverrideSuspendsSteering(t *testing.T) {
	a, body, _, clock, rec := newActuator(true)
	body.vel.X = 18
	a.Override(150 * time.Millisecond)
	a.SetInput(-1)
	a.Tick(10 * time.Millisecond)
	if body.vel.X != 18 || !a.Overridden() {
		t.Fatalf("override must leave the burst alone, got %v", body.vel.X)
	}
	if len(rec.Moved) != 1 {
		t.Fatalf("Moved is emitted even while overridden")
	}
	clock.Advance(150 * time.Millisecond)
	a.Tick(10 * time.Millisecond)
	if a.Overridden() || body.vel.X != 5 {
		t.Fatalf("expected steering and clamp after the window, got %v", body.vel.X)
	}
}

func TestMovedEventEveryTick(t *testing.T) {
	a, body, _, _, rec := newActuator(true)
	body.pos = cp.Vector{X: 3, Y: 4}
	a.SetInput(0.5)
	for i := 0; i < 3; i++ {
		a.Tick(10 * time.Millisecond)
	}
	if len(rec.Moved) != 3 {
		t.Fatalf("expected 3 Moved events, got %d", len(rec.Moved))
	}
	last := rec.Moved[2]
	if last.Input != 0.5 || !last.Grounded || last.Position != body.pos || last.Velocity != body.vel {
		t.Fatalf("unexpected Moved event %+v", last)
	}
}

func TestActuatorSanitizes(t *testing.T) {
	a, body, _, _, _ := newActuator(true)
	a.SetInput(math.NaN())
	if a.Input() != 0 {
		t.Fatalf("NaN input must become 0")
	}
	a.SetInput(3)
	if a.Input() != 1 || a.Facing() != 1 {
		t.Fatalf("input must clamp to 1")
	}
	a.SetInput(-0.05)
	if a.Facing() != 1 {
		t.Fatalf("input inside the deadzone must not change facing")
	}

	a.SetVelocity(cp.Vector{X: math.Inf(1), Y: math.NaN()})
	if body.vel.X != 0 || body.vel.Y != 0 {
		t.Fatalf("non-finite velocity must be zeroed, got %v", body.vel)
	}
	a.SetVelocity(cp.Vector{X: 1e9})
	if body.vel.X != MaxVelocity {
		t.Fatalf("extreme velocity must be bounded, got %v", body.vel.X)
	}
	body.vel = cp.Vector{X: math.NaN()}
	a.Tick(10 * time.Millisecond)
	if !common.IsFinite(body.vel) {
		t.Fatalf("tick must never write non-finite velocity, got %v", body.vel)
	}
}

func TestImpulseAndJump(t *testing.T) {
	a, body, _, _, _ := newActuator(false)
	body.vel = cp.Vector{X: 2, Y: -1}
	a.ApplyImpulse(cp.Vector{X: 1, Y: 1})
	if body.vel != (cp.Vector{X: 3, Y: 0}) {
		t.Fatalf("impulse must add, got %v", body.vel)
	}
	a.Jump(8)
	if body.vel != (cp.Vector{X: 3, Y: 8}) {
		t.Fatalf("jump must set vy and keep vx, got %v", body.vel)
	}
}

func TestActuatorWithoutBody(t *testing.T) {
	a := NewActuator(movementConfig(), common.NewSimClock(), nil, &fakeGround{}, nil)
	a.SetInput(1)
	a.Tick(10 * time.Millisecond)
	a.Jump(8)
	if a.Velocity() != (cp.Vector{}) {
		t.Fatalf("disabled actuator must report zero velocity")
	}
}
