package stats

// Provider supplies derived stats that live outside the locomotion core. It
// is polled, never pushed.
type Provider interface {
	MaxEnergy() float64
}

// Fixed is a Provider with a constant max energy.
type Fixed float64

func (f Fixed) MaxEnergy() float64 {
	return float64(f)
}

// Func adapts a plain function to Provider.
type Func func() float64

func (f Func) MaxEnergy() float64 {
	if f == nil {
		return 0
	}
	return f()
}
