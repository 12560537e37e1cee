package tuning

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("tuning: invalid config")

// Config is the full set of locomotion tunables. Records are plain data; the
// locomotion package never mutates them.
type Config struct {
	Movement Movement `yaml:"movement"`
	Jump     Jump     `yaml:"jump"`
	Dash     Dash     `yaml:"dash"`
	Energy   Energy   `yaml:"energy"`
	Ground   Ground   `yaml:"ground"`
}

type Movement struct {
	MoveSpeed             float64 `yaml:"move_speed"`
	Acceleration          float64 `yaml:"acceleration"`
	Deceleration          float64 `yaml:"deceleration"`
	AirControlStrength    float64 `yaml:"air_control_strength"`
	Deadzone              float64 `yaml:"deadzone"`
	ClampGroundedVelocity bool    `yaml:"clamp_grounded_velocity"`
}

type Jump struct {
	Force      float64       `yaml:"force"`
	BufferTime time.Duration `yaml:"buffer_time"`
}

type Dash struct {
	Force                    float64       `yaml:"force"`
	Cooldown                 time.Duration `yaml:"cooldown"`
	Duration                 time.Duration `yaml:"duration"`
	PreferInput              bool          `yaml:"prefer_input"`
	InputThreshold           float64       `yaml:"input_threshold"`
	DefaultDirection         Vec2          `yaml:"default_direction"`
	PreserveVerticalVelocity bool          `yaml:"preserve_vertical_velocity"`
	AllowAirDash             bool          `yaml:"allow_air_dash"`
}

// Energy also holds the cost table: every ability reads its cost from here.
type Energy struct {
	Max            float64       `yaml:"max"`
	RegenRate      float64       `yaml:"regen_rate"`
	RegenDelay     time.Duration `yaml:"regen_delay"`
	AutoRegenerate bool          `yaml:"auto_regenerate"`
	DashCost       float64       `yaml:"dash_cost"`
	JumpCost       float64       `yaml:"jump_cost"`
}

type Ground struct {
	ProbeDistance float64       `yaml:"probe_distance"`
	ProbeRadius   float64       `yaml:"probe_radius"`
	UseCircleCast bool          `yaml:"use_circle_cast"`
	Offset        Vec2          `yaml:"offset"`
	Mask          uint          `yaml:"mask"`
	CoyoteTime    time.Duration `yaml:"coyote_time"`
}

type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// GroundMask is the collision category static level geometry is placed in.
const GroundMask uint = 1 << 0

// Default returns the stock tuning.
func Default() Config {
	return Config{
		Movement: Movement{
			MoveSpeed:             5,
			Acceleration:          10,
			Deceleration:          10,
			AirControlStrength:    0.1,
			Deadzone:              0.1,
			ClampGroundedVelocity: true,
		},
		Jump: Jump{
			Force:      8,
			BufferTime: 100 * time.Millisecond,
		},
		Dash: Dash{
			Force:                    18,
			Cooldown:                 500 * time.Millisecond,
			Duration:                 150 * time.Millisecond,
			PreferInput:              true,
			InputThreshold:           0.1,
			DefaultDirection:         Vec2{X: 1},
			PreserveVerticalVelocity: true,
			AllowAirDash:             true,
		},
		Energy: Energy{
			Max:            100,
			RegenRate:      20,
			RegenDelay:     time.Second,
			AutoRegenerate: true,
			DashCost:       25,
		},
		Ground: Ground{
			ProbeDistance: 0.2,
			ProbeRadius:   0.05,
			Mask:          GroundMask,
			CoyoteTime:    150 * time.Millisecond,
		},
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tuning: unmarshal: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes c as YAML in the same layout Parse reads.
func Marshal(c Config) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("tuning: marshal: %w", err)
	}
	return data, nil
}

// Normalize repairs values that have one obvious fix: the default dash
// direction becomes a unit vector (+X when zero).
func (c *Config) Normalize() {
	d := c.Dash.DefaultDirection.Vector()
	if l := d.Length(); l > 0 && !math.IsNaN(l) && !math.IsInf(l, 0) {
		d = d.Mult(1 / l)
		c.Dash.DefaultDirection = Vec2{X: d.X, Y: d.Y}
		return
	}
	c.Dash.DefaultDirection = Vec2{X: 1}
}

// Validate reports every inconsistent value at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if !positive(c.Movement.MoveSpeed) {
		bad("movement.move_speed must be positive, got %v", c.Movement.MoveSpeed)
	}
	if !nonNegative(c.Movement.Acceleration) || !nonNegative(c.Movement.Deceleration) {
		bad("movement acceleration/deceleration must not be negative")
	}
	if !inUnit(c.Movement.AirControlStrength) {
		bad("movement.air_control_strength must be in [0,1], got %v", c.Movement.AirControlStrength)
	}
	if !inUnit(c.Movement.Deadzone) {
		bad("movement.deadzone must be in [0,1], got %v", c.Movement.Deadzone)
	}
	if !nonNegative(c.Jump.Force) {
		bad("jump.force must not be negative, got %v", c.Jump.Force)
	}
	if c.Jump.BufferTime < 0 {
		bad("jump.buffer_time must not be negative")
	}
	if !nonNegative(c.Dash.Force) {
		bad("dash.force must not be negative, got %v", c.Dash.Force)
	}
	if c.Dash.Cooldown < 0 || c.Dash.Duration < 0 {
		bad("dash cooldown/duration must not be negative")
	}
	if !nonNegative(c.Dash.InputThreshold) {
		bad("dash.input_threshold must not be negative")
	}
	if !nonNegative(c.Energy.Max) {
		bad("energy.max must not be negative, got %v", c.Energy.Max)
	}
	if !nonNegative(c.Energy.RegenRate) {
		bad("energy.regen_rate must not be negative, got %v", c.Energy.RegenRate)
	}
	if c.Energy.RegenDelay < 0 {
		bad("energy.regen_delay must not be negative")
	}
	if !nonNegative(c.Energy.DashCost) || !nonNegative(c.Energy.JumpCost) {
		bad("energy costs must not be negative")
	}
	if c.Energy.DashCost > c.Energy.Max {
		bad("energy.dash_cost (%v) exceeds energy.max (%v)", c.Energy.DashCost, c.Energy.Max)
	}
	if c.Energy.JumpCost > c.Energy.Max {
		bad("energy.jump_cost (%v) exceeds energy.max (%v)", c.Energy.JumpCost, c.Energy.Max)
	}
	if !positive(c.Ground.ProbeDistance) {
		bad("ground.probe_distance must be positive, got %v", c.Ground.ProbeDistance)
	}
	if c.Ground.UseCircleCast && !positive(c.Ground.ProbeRadius) {
		bad("ground.probe_radius must be positive for circle casts")
	}
	if c.Ground.Mask == 0 {
		bad("ground.mask must select at least one category")
	}
	if c.Ground.CoyoteTime < 0 {
		bad("ground.coyote_time must not be negative")
	}

	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
