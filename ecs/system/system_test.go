package system

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/ecs"
	"github.com/milk9111/mechlite/ecs/component"
	"github.com/milk9111/mechlite/ecs/entity"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/locomotion"
	"github.com/milk9111/mechlite/physics"
	"github.com/milk9111/mechlite/tuning"
)

const frame = time.Second / 60

type harness struct {
	w     *ecs.World
	space *physics.Space
	loco  *LocomotionSystem
	rec   *event.Recorder
	e     ecs.Entity
	next  component.Input
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		w:     ecs.NewWorld(frame),
		space: physics.NewSpace(physics.DefaultGravity),
		loco:  NewLocomotionSystem(),
	}
	h.space.AddStaticBox(cp.BB{L: -50, B: -1, R: 50, T: 0})
	h.rec = event.Record(h.w.Events())

	h.w.AddSystem(NewInputSystemWith(func() component.Input {
		in := h.next
		h.next.JumpPressed = false
		h.next.DashPressed = false
		return in
	}))
	h.w.AddSystem(h.loco)
	h.w.AddSystem(NewPhysicsSystem(h.space))
	h.w.AddSystem(NewRespawnSystem(-10))

	e, err := entity.NewCharacter(h.w, h.space, entity.CharacterOptions{
		Config:     tuning.Default(),
		Spawn:      cp.Vector{X: 0, Y: 1},
		Controlled: true,
	})
	if err != nil {
		t.Fatalf("new character: %v", err)
	}
	h.e = e
	return h
}

func (h *harness) run(frames int) {
	for i := 0; i < frames; i++ {
		h.w.Update(frame)
	}
}

func (h *harness) character(t *testing.T) *locomotion.Character {
	t.Helper()
	loco, ok := ecs.Get(h.w, h.e, component.LocomotionComponent.Kind())
	if !ok {
		t.Fatalf("missing locomotion component")
	}
	return loco.Character
}

func (h *harness) body(t *testing.T) *physics.Body {
	t.Helper()
	pb, ok := ecs.Get(h.w, h.e, component.PhysicsBodyComponent.Kind())
	if !ok {
		t.Fatalf("missing physics body")
	}
	return pb.Body
}

func TestCharacterLandsOnFloor(t *testing.T) {
	h := newHarness(t)
	h.run(60)
	c := h.character(t)
	if !c.Grounded() {
		t.Fatalf("expected grounded after falling onto the floor, y=%v", h.body(t).Position().Y)
	}
	if len(h.rec.GroundChanged) == 0 || !h.rec.GroundChanged[len(h.rec.GroundChanged)-1].Grounded {
		t.Fatalf("expected a landing event")
	}
	if len(h.rec.Moved) != 60 {
		t.Fatalf("expected one Moved per fixed step, got %d", len(h.rec.Moved))
	}
}

func TestJumpThroughSystems(t *testing.T) {
	h := newHarness(t)
	h.run(60)
	h.next.JumpPressed = true
	h.run(1)
	if len(h.rec.Jumped) != 1 {
		t.Fatalf("expected one jump, got %d", len(h.rec.Jumped))
	}
	if vy := h.body(t).Velocity().Y; vy <= 0 {
		t.Fatalf("expected upward velocity, got %v", vy)
	}
	h.run(10)
	if h.character(t).Grounded() {
		t.Fatalf("expected airborne mid jump")
	}
	if len(h.rec.Jumped) != 1 {
		t.Fatalf("press must be consumed once")
	}
}

func TestDashThroughSystems(t *testing.T) {
	h := newHarness(t)
	h.run(60)
	h.next = component.Input{MoveX: 1, DashPressed: true}
	h.run(1)
	c := h.character(t)
	if len(h.rec.Dashed) != 1 || c.Energy() != 75 {
		t.Fatalf("expected one paid dash, events %d energy %v", len(h.rec.Dashed), c.Energy())
	}
	if vx := h.body(t).Velocity().X; vx < 10 {
		t.Fatalf("expected dash speed to survive the step, got %v", vx)
	}
	h.next.DashPressed = true
	h.run(1)
	if len(h.rec.Dashed) != 1 {
		t.Fatalf("second dash inside cooldown must be refused")
	}
}

func TestReconfigureThroughSystem(t *testing.T) {
	h := newHarness(t)
	cfg := tuning.Default()
	cfg.Energy.Max = 50
	cfg.Energy.DashCost = 10
	h.loco.Reconfigure(cfg)
	h.run(1)
	c := h.character(t)
	if c.EnergyPool().Max() != 50 || c.Energy() != 50 {
		t.Fatalf("expected reconfigured pool, got %v/%v", c.Energy(), c.EnergyPool().Max())
	}
}

func TestRespawnBelowKillPlane(t *testing.T) {
	h := newHarness(t)
	h.body(t).SetPosition(cp.Vector{X: 3, Y: -20})
	h.run(1)
	if p := h.body(t).Position(); p.Y < 0 {
		t.Fatalf("expected respawn, got %v", p)
	}
}

func TestDestroyCharacter(t *testing.T) {
	h := newHarness(t)
	if !entity.DestroyCharacter(h.w, h.space, h.e) {
		t.Fatalf("expected destroy to succeed")
	}
	h.run(5)
	if ecs.IsAlive(h.w, h.e) {
		t.Fatalf("entity should be gone")
	}
}
