package physics

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/levels"
	"github.com/milk9111/mechlite/tuning"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
)

const (
	// CategoryGround is the filter category of level geometry. It matches the
	// default ground probe mask.
	CategoryGround uint = tuning.GroundMask
	// CategoryCharacter is kept out of the ground mask so a probe never hits
	// the body it hangs from.
	CategoryCharacter uint = 1 << 1
)

// DefaultGravity is in world units per second squared, pointing down.
const DefaultGravity = 30.0

// Space owns the Chipmunk space and its static level shapes.
type Space struct {
	space  *cp.Space
	static int
}

// NewSpace creates a y-up space pulling bodies toward -Y.
func NewSpace(gravity float64) *Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: -gravity})
	return &Space{space: space}
}

// Space returns the underlying Chipmunk space.
func (s *Space) Space() *cp.Space {
	if s == nil {
		return nil
	}
	return s.space
}

func (s *Space) Step(dt time.Duration) {
	if s == nil || s.space == nil || dt <= 0 {
		return
	}
	s.space.Step(dt.Seconds())
}

// StaticShapes reports how many static shapes have been added.
func (s *Space) StaticShapes() int {
	if s == nil {
		return 0
	}
	return s.static
}

// AddStaticBox adds a solid axis-aligned box on the ground category.
func (s *Space) AddStaticBox(bb cp.BB) *cp.Shape {
	if s == nil || s.space == nil {
		return nil
	}
	shape := cp.NewBox2(s.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: CategoryGround, Mask: cp.ALL_CATEGORIES})
	s.space.AddShape(shape)
	s.static++
	return shape
}

// BuildLevel merges solid tiles into as few boxes as possible and adds them.
// It returns the number of boxes created.
func (s *Space) BuildLevel(lvl *levels.Level) int {
	if s == nil || lvl == nil {
		return 0
	}
	width, height := lvl.Width(), lvl.Height()
	processed := make([]bool, width*height)
	added := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if processed[idx] {
				continue
			}
			if !lvl.Solid(x, y) {
				processed[idx] = true
				continue
			}

			w := 1
			for x+w < width && !processed[y*width+x+w] && lvl.Solid(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if processed[(y+h)*width+xi] || !lvl.Solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			// Rows grow downward, so the merged box spans from the last row's
			// bottom edge to the first row's top edge.
			top := lvl.TileBB(x, y)
			bottom := lvl.TileBB(x+w-1, y+h-1)
			s.AddStaticBox(cp.BB{L: top.L, B: bottom.B, R: bottom.R, T: top.T})
			added++

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
		}
	}
	return added
}

// AddCharacter creates a rotation-locked box body centered on pos.
func (s *Space) AddCharacter(pos cp.Vector, width, height float64) *Body {
	if s == nil || s.space == nil || width <= 0 || height <= 0 {
		return nil
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(pos)
	s.space.AddBody(body)

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.ShapeFilter{Group: cp.NO_GROUP, Categories: CategoryCharacter, Mask: cp.ALL_CATEGORIES})
	s.space.AddShape(shape)

	return &Body{body: body, shape: shape, width: width, height: height}
}

// ProbeSkin lifts the start of every downward cast. Chipmunk ignores shapes
// a segment starts inside, and a resting body sinks up to the collision slop
// into its floor.
const ProbeSkin = 0.25

// CastDown sweeps a segment of the given radius from origin toward -Y and
// reports whether it touched a shape whose category is in mask. A zero radius
// is a plain ray.
func (s *Space) CastDown(origin cp.Vector, distance, radius float64, mask uint) bool {
	if s == nil || s.space == nil || distance <= 0 || mask == 0 {
		return false
	}
	if radius < 0 {
		radius = 0
	}
	end := cp.Vector{X: origin.X, Y: origin.Y - distance}
	origin.Y += ProbeSkin
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: mask}
	info := s.space.SegmentQueryFirst(origin, end, radius, filter)
	return info.Shape != nil
}
