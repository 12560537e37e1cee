package physics

import "github.com/jakecoffman/cp"

// Body adapts a Chipmunk body to the velocity/position surface the
// locomotion components drive.
type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	width  float64
	height float64
}

func (b *Body) Velocity() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

func (b *Body) SetVelocity(v cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetVelocityVector(v)
}

func (b *Body) Position() cp.Vector {
	if b == nil || b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

func (b *Body) SetPosition(p cp.Vector) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(p)
	b.body.SetVelocityVector(cp.Vector{})
}

func (b *Body) HalfHeight() float64 {
	if b == nil {
		return 0
	}
	return b.height / 2
}

func (b *Body) Size() (float64, float64) {
	if b == nil {
		return 0, 0
	}
	return b.width, b.height
}

// Raw exposes the Chipmunk body for rendering and debugging.
func (b *Body) Raw() *cp.Body {
	if b == nil {
		return nil
	}
	return b.body
}

// Remove detaches the body and its shape from space.
func (s *Space) Remove(b *Body) {
	if s == nil || s.space == nil || b == nil || b.body == nil {
		return
	}
	if b.shape != nil {
		s.space.RemoveShape(b.shape)
	}
	s.space.RemoveBody(b.body)
	b.body = nil
	b.shape = nil
}
