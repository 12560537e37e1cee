package system

import (
	"github.com/milk9111/mechlite/ecs"
	"github.com/milk9111/mechlite/ecs/component"
	"github.com/milk9111/mechlite/physics"
)

// PhysicsSystem runs the fixed steps owed this frame. Each step applies every
// character's dash, steering and jump before the space integrates.
type PhysicsSystem struct {
	space *physics.Space
}

func NewPhysicsSystem(space *physics.Space) *PhysicsSystem {
	return &PhysicsSystem{space: space}
}

func (ps *PhysicsSystem) Space() *physics.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	step := w.FixedDelta()
	for i := 0; i < w.FixedSteps(); i++ {
		ecs.ForEach(w, component.LocomotionComponent.Kind(), func(_ ecs.Entity, loco *component.Locomotion) {
			if loco.Character != nil {
				loco.Character.PhysicsTick(step)
			}
		})
		ps.space.Step(step)
	}
}
