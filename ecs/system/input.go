package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/mechlite/ecs"
	"github.com/milk9111/mechlite/ecs/component"
)

// Sampler reads one frame of device input.
type Sampler func() component.Input

type InputSystem struct {
	sample Sampler
}

// NewInputSystem samples the keyboard and the first gamepad.
func NewInputSystem() *InputSystem {
	return &InputSystem{sample: SampleDevices}
}

// NewInputSystemWith uses a custom sampler, for replays and tests.
func NewInputSystemWith(s Sampler) *InputSystem {
	return &InputSystem{sample: s}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.sample == nil || w == nil {
		return
	}
	in := i.sample()
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		// presses latch until the locomotion system consumes them
		input.MoveX = in.MoveX
		input.MoveY = in.MoveY
		input.JumpPressed = input.JumpPressed || in.JumpPressed
		input.DashPressed = input.DashPressed || in.DashPressed
	})
}

// SampleDevices maps A/D or arrows to MoveX, W/S to MoveY, Space to jump and
// Shift or K to dash. The left stick overrides the keys outside its deadzone.
func SampleDevices() component.Input {
	const stickDeadzone = 0.2

	var in component.Input
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.MoveY += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.MoveY -= 1
	}
	in.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	in.DashPressed = inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyK)

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			// stick up is negative
			in.MoveX = lx
			in.MoveY = -ly
		}
		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.DashPressed = in.DashPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft) ||
			inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}
	return in
}
