package event

// Recorder captures every event published on a Channel. Tests read its
// slices instead of polling component internals.
type Recorder struct {
	Moved         []Moved
	Jumped        []Jumped
	Dashed        []Dashed
	EnergyChanged []EnergyChanged
	GroundChanged []GroundChanged

	detach []func()
}

// Record subscribes a new Recorder to every stream of c.
func Record(c *Channel) *Recorder {
	r := &Recorder{}
	if c == nil {
		return r
	}
	r.detach = append(r.detach,
		c.Moved.Subscribe(func(e Moved) { r.Moved = append(r.Moved, e) }),
		c.Jumped.Subscribe(func(e Jumped) { r.Jumped = append(r.Jumped, e) }),
		c.Dashed.Subscribe(func(e Dashed) { r.Dashed = append(r.Dashed, e) }),
		c.EnergyChanged.Subscribe(func(e EnergyChanged) { r.EnergyChanged = append(r.EnergyChanged, e) }),
		c.GroundChanged.Subscribe(func(e GroundChanged) { r.GroundChanged = append(r.GroundChanged, e) }),
	)
	return r
}

// Reset forgets captured events but stays subscribed.
func (r *Recorder) Reset() {
	if r == nil {
		return
	}
	r.Moved = nil
	r.Jumped = nil
	r.Dashed = nil
	r.EnergyChanged = nil
	r.GroundChanged = nil
}

// Stop detaches the recorder from its channel.
func (r *Recorder) Stop() {
	if r == nil {
		return
	}
	for _, fn := range r.detach {
		fn()
	}
	r.detach = nil
}

// Count returns how many events of kind k were captured.
func (r *Recorder) Count(k Kind) int {
	if r == nil {
		return 0
	}
	switch k {
	case KindMoved:
		return len(r.Moved)
	case KindJumped:
		return len(r.Jumped)
	case KindDashed:
		return len(r.Dashed)
	case KindEnergyChanged:
		return len(r.EnergyChanged)
	case KindGroundChanged:
		return len(r.GroundChanged)
	default:
		return 0
	}
}
