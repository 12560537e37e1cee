package locomotion

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/tuning"
)

// Intent is one frame of sampled input.
type Intent struct {
	Move        cp.Vector
	JumpPressed bool
	DashPressed bool
}

// Deps are the collaborators a Character is built from.
type Deps struct {
	Clock      common.Clock
	Events     *event.Channel
	Body       Body
	Prober     Prober
	HalfHeight float64
	// Stats overrides the configured max energy when set.
	Stats StatProvider
}

// Character coordinates one set of locomotion components. Sample and
// LogicTick run once per frame; PhysicsTick once per fixed step.
type Character struct {
	cfg tuning.Config

	ground   *GroundSensor
	energy   *EnergyPool
	movement *Actuator
	jump     *Jump
	dash     *Dash

	dashPending bool
	dashInput   cp.Vector
}

func NewCharacter(cfg tuning.Config, deps Deps) *Character {
	c := &Character{cfg: cfg}
	c.ground = NewGroundSensor(cfg.Ground, deps.Clock, deps.Body, deps.Prober, deps.HalfHeight, deps.Events)
	c.energy = NewEnergyPool(cfg.Energy, deps.Clock, deps.Stats, deps.Events)
	c.movement = NewActuator(cfg.Movement, deps.Clock, deps.Body, c.ground, deps.Events)
	c.jump = NewJump(cfg.Jump, cfg.Energy.JumpCost, deps.Clock, c.movement, c.ground, c.energy, deps.Events)
	c.dash = NewDash(cfg.Dash, cfg.Energy.DashCost, deps.Clock, c.movement, c.energy, c.ground, deps.Events)
	return c
}

// Sample feeds this frame's input. Presses are edges and stay pending until
// the next physics step consumes them.
func (c *Character) Sample(in Intent) {
	if c == nil {
		return
	}
	move := common.FiniteVec(in.Move)
	c.movement.SetInput(move.X)
	if math.Abs(move.X) > c.cfg.Movement.Deadzone {
		c.dash.SetLastMoveDirection(cp.Vector{X: c.movement.Facing()})
	}
	if in.JumpPressed {
		c.jump.BufferInput(true)
	}
	if in.DashPressed {
		c.dashPending = true
		c.dashInput = move
	}
}

// LogicTick runs the variable rate updates: ground probe, energy and
// cooldown decay. The clock must already have been advanced by dt.
func (c *Character) LogicTick(dt time.Duration) {
	if c == nil {
		return
	}
	c.ground.Probe()
	c.energy.Tick(dt)
	c.dash.Tick(dt)
}

// PhysicsTick applies velocity changes for one fixed step in the order
// dash, steering, jump.
func (c *Character) PhysicsTick(dt time.Duration) {
	if c == nil {
		return
	}
	if c.dashPending {
		c.dashPending = false
		c.dash.Dash(c.dashInput)
	}
	c.movement.Tick(dt)
	c.jump.TryExecute()
}

// Reconfigure pushes new tunables to every component.
func (c *Character) Reconfigure(cfg tuning.Config) {
	if c == nil {
		return
	}
	c.cfg = cfg
	c.ground.SetConfig(cfg.Ground)
	c.energy.SetConfig(cfg.Energy)
	c.movement.SetConfig(cfg.Movement)
	c.jump.SetConfig(cfg.Jump, cfg.Energy.JumpCost)
	c.dash.SetConfig(cfg.Dash, cfg.Energy.DashCost)
}

func (c *Character) Config() tuning.Config { return c.cfg }

func (c *Character) Grounded() bool { return c.ground.IsGrounded() }

func (c *Character) Velocity() cp.Vector { return c.movement.Velocity() }

func (c *Character) Energy() float64 { return c.energy.Current() }

func (c *Character) CanDash() bool { return c.dash.CanDash() }

func (c *Character) DashCooldownRemaining() time.Duration { return c.dash.CooldownRemaining() }

func (c *Character) GroundSensor() *GroundSensor { return c.ground }

func (c *Character) EnergyPool() *EnergyPool { return c.energy }

func (c *Character) Actuator() *Actuator { return c.movement }

func (c *Character) JumpAbility() *Jump { return c.jump }

func (c *Character) DashAbility() *Dash { return c.dash }

// SetDebug toggles rejection logging on every component.
func (c *Character) SetDebug(on bool) {
	if c == nil {
		return
	}
	c.ground.Debug = on
	c.energy.Debug = on
	c.jump.Debug = on
	c.dash.Debug = on
}
