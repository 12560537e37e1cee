package component

// Input stores the sampled input for a controlled entity. Pressed flags are
// edges: true only on the frame the button went down.
type Input struct {
	MoveX       float64
	MoveY       float64
	JumpPressed bool
	DashPressed bool
}

var InputComponent = NewComponent[Input]("input")
