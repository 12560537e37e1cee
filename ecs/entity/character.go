package entity

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/ecs"
	"github.com/milk9111/mechlite/ecs/component"
	"github.com/milk9111/mechlite/locomotion"
	"github.com/milk9111/mechlite/physics"
	"github.com/milk9111/mechlite/tuning"
)

const (
	CharacterWidth  = 0.8
	CharacterHeight = 1.0
)

var ErrNoSpace = errors.New("entity: physics space is nil")

// CharacterOptions controls NewCharacter. Stats may be nil.
type CharacterOptions struct {
	Config tuning.Config
	Spawn  cp.Vector
	Stats  locomotion.StatProvider
	// Controlled adds an Input component so the input system drives it.
	Controlled bool
}

// NewCharacter creates a body in space and an entity whose locomotion drives
// it through the world's clock and event channel.
func NewCharacter(w *ecs.World, space *physics.Space, opts CharacterOptions) (ecs.Entity, error) {
	if space == nil {
		return 0, ErrNoSpace
	}
	body := space.AddCharacter(opts.Spawn, CharacterWidth, CharacterHeight)
	if body == nil {
		return 0, fmt.Errorf("character: add body at %v", opts.Spawn)
	}

	c := locomotion.NewCharacter(opts.Config, locomotion.Deps{
		Clock:      w.Clock(),
		Events:     w.Events(),
		Body:       body,
		Prober:     space,
		HalfHeight: body.HalfHeight(),
		Stats:      opts.Stats,
	})

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:   body,
		Width:  CharacterWidth,
		Height: CharacterHeight,
	}); err != nil {
		space.Remove(body)
		return 0, fmt.Errorf("character: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.LocomotionComponent.Kind(), &component.Locomotion{
		Character: c,
		Spawn:     opts.Spawn,
	}); err != nil {
		space.Remove(body)
		return 0, fmt.Errorf("character: add locomotion: %w", err)
	}
	if opts.Controlled {
		if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
			space.Remove(body)
			return 0, fmt.Errorf("character: add input: %w", err)
		}
	}
	return e, nil
}

// DestroyCharacter removes e's body from space and destroys the entity.
func DestroyCharacter(w *ecs.World, space *physics.Space, e ecs.Entity) bool {
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		space.Remove(body.Body)
	}
	return ecs.DestroyEntity(w, e)
}
