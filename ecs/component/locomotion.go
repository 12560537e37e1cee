package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/locomotion"
)

// Locomotion carries a character's ability coordinator.
type Locomotion struct {
	Character *locomotion.Character
	// Spawn is where the body returns when it falls below the kill plane.
	Spawn cp.Vector
}

var LocomotionComponent = NewComponent[Locomotion]("locomotion")
