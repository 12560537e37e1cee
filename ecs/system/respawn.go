package system

import (
	"log"

	"github.com/milk9111/mechlite/ecs"
	"github.com/milk9111/mechlite/ecs/component"
)

// RespawnSystem returns bodies that fall below KillY to their spawn point.
type RespawnSystem struct {
	KillY float64
}

func NewRespawnSystem(killY float64) *RespawnSystem {
	return &RespawnSystem{KillY: killY}
}

func (r *RespawnSystem) Update(w *ecs.World) {
	if r == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.LocomotionComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, loco *component.Locomotion, body *component.PhysicsBody) {
		if body.Body == nil || body.Body.Position().Y >= r.KillY {
			return
		}
		log.Printf("RespawnSystem: entity %v fell below %.1f, respawning", e, r.KillY)
		body.Body.SetPosition(loco.Spawn)
	})
}
