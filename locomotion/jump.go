package locomotion

import (
	"log"
	"time"

	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/tuning"
)

type JumpPhase uint8

const (
	JumpIdle JumpPhase = iota
	JumpBuffered
	JumpConsumed
)

func (p JumpPhase) String() string {
	switch p {
	case JumpIdle:
		return "idle"
	case JumpBuffered:
		return "buffered"
	case JumpConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// Jump buffers presses and executes them once ground action is allowed.
type Jump struct {
	cfg    tuning.Jump
	cost   float64
	clock  common.Clock
	mover  Movable
	ground GroundDetector
	energy EnergyUser
	events *event.Channel

	phase     JumpPhase
	pressedAt time.Duration

	disabled bool

	Debug bool
}

// NewJump wires a jump. energy may be nil when cost is 0.
func NewJump(cfg tuning.Jump, cost float64, clock common.Clock, mover Movable, ground GroundDetector, energy EnergyUser, events *event.Channel) *Jump {
	j := &Jump{
		cfg:    cfg,
		cost:   cost,
		clock:  clock,
		mover:  mover,
		ground: ground,
		energy: energy,
		events: events,
	}
	switch {
	case clock == nil:
		j.fault("missing clock")
	case mover == nil:
		j.fault("missing actuator")
	case ground == nil:
		j.fault("missing ground detector")
	case cost > 0 && energy == nil:
		j.fault("jump has a cost but no energy pool")
	}
	return j
}

func (j *Jump) fault(reason string) {
	log.Printf("Jump: disabled: %s", reason)
	j.disabled = true
}

func (j *Jump) SetConfig(cfg tuning.Jump, cost float64) {
	if j == nil {
		return
	}
	j.cfg = cfg
	if cost > 0 && j.energy == nil {
		log.Printf("Jump: ignoring cost %.2f without an energy pool", cost)
		cost = 0
	}
	j.cost = cost
}

func (j *Jump) Phase() JumpPhase {
	if j == nil {
		return JumpIdle
	}
	return j.phase
}

// BufferInput records a press. pressed is an edge: holding the button must
// not re-buffer every frame.
func (j *Jump) BufferInput(pressed bool) {
	if j == nil || j.disabled || !pressed {
		return
	}
	j.phase = JumpBuffered
	j.pressedAt = j.clock.Now()
}

// BufferRemaining is how long the current press stays eligible.
func (j *Jump) BufferRemaining() time.Duration {
	if j == nil || j.disabled || j.phase != JumpBuffered {
		return 0
	}
	rem := j.cfg.BufferTime - (j.clock.Now() - j.pressedAt)
	if rem < 0 {
		return 0
	}
	return rem
}

// TryExecute runs a buffered press when ground action is allowed. An expired
// press lapses silently.
func (j *Jump) TryExecute() bool {
	if j == nil || j.disabled || j.phase != JumpBuffered {
		return false
	}
	elapsed := j.clock.Now() - j.pressedAt
	if elapsed != 0 && elapsed >= j.cfg.BufferTime {
		j.phase = JumpIdle
		if j.Debug {
			log.Printf("Jump: buffered press lapsed after %v", elapsed)
		}
		return false
	}
	if !j.ground.CanPerformGroundAction() {
		return false
	}
	if j.cost > 0 && !j.energy.ConsumeAs("jump", j.cost) {
		if j.Debug {
			log.Printf("Jump: not enough energy for cost %.2f", j.cost)
		}
		return false
	}

	usedCoyote := !j.ground.IsGrounded()
	j.mover.Jump(j.cfg.Force)
	j.ground.ConsumeCoyote()
	j.phase = JumpConsumed

	j.events.PublishJumped(event.Jumped{
		Velocity:   j.mover.Velocity(),
		Position:   j.mover.Position(),
		UsedCoyote: usedCoyote,
		UsedBuffer: elapsed > 0,
	})
	return true
}

// Request is a forced jump: press and execute in one call.
func (j *Jump) Request() bool {
	j.BufferInput(true)
	return j.TryExecute()
}
