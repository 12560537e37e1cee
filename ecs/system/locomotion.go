package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/ecs"
	"github.com/milk9111/mechlite/ecs/component"
	"github.com/milk9111/mechlite/locomotion"
	"github.com/milk9111/mechlite/tuning"
)

// LocomotionSystem runs the variable rate half of every character: it feeds
// the sampled input, then probes ground and decays energy and cooldowns.
type LocomotionSystem struct {
	pending *tuning.Config
}

func NewLocomotionSystem() *LocomotionSystem {
	return &LocomotionSystem{}
}

// Reconfigure queues cfg for every character; it applies at the next Update.
func (s *LocomotionSystem) Reconfigure(cfg tuning.Config) {
	if s == nil {
		return
	}
	s.pending = &cfg
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	pending := s.pending
	s.pending = nil
	dt := w.FrameDelta()

	ecs.ForEach(w, component.LocomotionComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion) {
		c := loco.Character
		if c == nil {
			return
		}
		if pending != nil {
			c.Reconfigure(*pending)
		}
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			c.Sample(locomotion.Intent{
				Move:        cp.Vector{X: input.MoveX, Y: input.MoveY},
				JumpPressed: input.JumpPressed,
				DashPressed: input.DashPressed,
			})
			input.JumpPressed = false
			input.DashPressed = false
		}
		c.LogicTick(dt)
	})
}
