package event

import (
	"time"

	"github.com/jakecoffman/cp"
)

// Kind identifies one of the event streams on a Channel.
type Kind uint8

const (
	KindMoved Kind = iota + 1
	KindJumped
	KindDashed
	KindEnergyChanged
	KindGroundChanged
)

func (k Kind) String() string {
	switch k {
	case KindMoved:
		return "moved"
	case KindJumped:
		return "jumped"
	case KindDashed:
		return "dashed"
	case KindEnergyChanged:
		return "energy_changed"
	case KindGroundChanged:
		return "ground_changed"
	default:
		return "unknown"
	}
}

// Moved is emitted by the movement actuator on every physics tick.
type Moved struct {
	Velocity cp.Vector
	Position cp.Vector
	Input    float64
	Grounded bool
}

// Jumped is emitted when a jump executes.
type Jumped struct {
	Velocity   cp.Vector
	Position   cp.Vector
	UsedCoyote bool
	UsedBuffer bool
}

// Dashed is emitted when a dash executes.
type Dashed struct {
	Direction       cp.Vector
	Force           float64
	Velocity        cp.Vector
	Position        cp.Vector
	EnergyConsumed  float64
	EnergyRemaining float64
}

type EnergyChangeReason uint8

const (
	EnergyConsumption EnergyChangeReason = iota + 1
	EnergyRegeneration
	EnergyInitialization
	EnergyConfigurationChange
	EnergyMaxChanged
)

func (r EnergyChangeReason) String() string {
	switch r {
	case EnergyConsumption:
		return "consumption"
	case EnergyRegeneration:
		return "regeneration"
	case EnergyInitialization:
		return "initialization"
	case EnergyConfigurationChange:
		return "configuration_change"
	case EnergyMaxChanged:
		return "max_changed"
	default:
		return "unknown"
	}
}

// EnergyChanged carries the pool state after a change. Delta is signed:
// consumption is negative.
type EnergyChanged struct {
	Current float64
	Max     float64
	Delta   float64
	Reason  EnergyChangeReason
	// Consumer names the ability that paid, when known.
	Consumer string
}

// Percent is Current/Max, or 0 for an empty max.
func (e EnergyChanged) Percent() float64 {
	if e.Max <= 0 {
		return 0
	}
	return e.Current / e.Max
}

// GroundChanged is emitted only on grounded/airborne transitions.
type GroundChanged struct {
	Grounded      bool
	WasGrounded   bool
	Position      cp.Vector
	SinceGrounded time.Duration
}
