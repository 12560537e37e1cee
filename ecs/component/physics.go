package component

import "github.com/milk9111/mechlite/physics"

// PhysicsBody links an entity to its Chipmunk body.
type PhysicsBody struct {
	Body   *physics.Body
	Width  float64
	Height float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]("physics_body")
