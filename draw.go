package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/view"
	"golang.org/x/image/colornames"
)

const (
	energyBarW = 200
	energyBarH = 10
)

func (g *Game) drawWorld(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	for y := 0; y < g.level.Height(); y++ {
		for x := 0; x < g.level.Width(); x++ {
			if !g.level.Solid(x, y) {
				continue
			}
			sx, sy, w, h := g.camera.ScreenRect(g.level.TileBB(x, y))
			vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(w), float32(h), colornames.Slategray, false)
		}
	}

	if bb, ok := g.playerBB(); ok {
		sx, sy, w, h := g.camera.ScreenRect(bb)
		vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(w), float32(h), g.playerColor(), false)
	}

	if g.debug {
		g.drawProbe(screen)
		cp.DrawSpace(g.space.Space(), &chipmunkDrawer{screen: screen, camera: g.camera})
	}
}

func (g *Game) playerColor() color.Color {
	c := g.character()
	switch {
	case c == nil:
		return colornames.Gray
	case c.DashAbility().IsDashing():
		return colornames.Orange
	case c.Grounded():
		return colornames.Crimson
	case c.GroundSensor().CoyoteRemaining() > 0:
		return colornames.Hotpink
	default:
		return colornames.Darkred
	}
}

// drawProbe shows the ground ray the sensor casts each frame.
func (g *Game) drawProbe(screen *ebiten.Image) {
	c := g.character()
	if c == nil || !c.GroundSensor().Enabled() {
		return
	}
	from := c.GroundSensor().GroundCheckPosition()
	to := cp.Vector{X: from.X, Y: from.Y - c.Config().Ground.ProbeDistance}
	x0, y0 := g.camera.WorldToScreen(from)
	x1, y1 := g.camera.WorldToScreen(to)
	clr := colornames.Yellow
	if c.Grounded() {
		clr = colornames.Lime
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, clr, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	c := g.character()
	if c == nil {
		return
	}

	energy := c.EnergyPool()
	vector.DrawFilledRect(screen, 10, 10, energyBarW, energyBarH, colornames.Dimgray, false)
	vector.DrawFilledRect(screen, 10, 10, float32(energyBarW*energy.Percent()), energyBarH, colornames.Deepskyblue, false)
	vector.StrokeRect(screen, 10, 10, energyBarW, energyBarH, 1, colornames.White, false)

	cool := c.DashAbility().CooldownFraction()
	vector.DrawFilledRect(screen, 10, 24, float32(energyBarW*(1-cool)), 4, colornames.Orange, false)

	move, moves := g.events.LastMove()
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  t=%.2fs  frames=%d\n", ebiten.ActualFPS(), common.Seconds(g.world.Clock().Now()), g.frames)
	fmt.Fprintf(&b, "energy %.1f/%.0f regen=%t\n", energy.Current(), energy.Max(), energy.IsRegenerating())
	fmt.Fprintf(&b, "dash ready=%t cooldown=%s\n", c.CanDash(), c.DashCooldownRemaining())
	fmt.Fprintf(&b, "grounded=%t coyote=%s jump=%s\n", c.Grounded(), c.GroundSensor().CoyoteRemaining(), c.JumpAbility().Phase())
	fmt.Fprintf(&b, "vel (%.2f, %.2f) facing=%+.0f moves=%d\n", move.Velocity.X, move.Velocity.Y, c.Actuator().Facing(), moves)
	if g.script != nil {
		fmt.Fprintf(&b, "stat level %.0f (L to raise)\n", g.statLevel)
	}
	b.WriteString("\n")
	for _, line := range g.events.Lines() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if g.status != "" {
		b.WriteString("\n" + g.status + "\n")
	}
	b.WriteString("\nEsc pause  R reset  F1 debug  F5 copy tuning")
	ebitenutil.DebugPrintAt(screen, b.String(), 10, 32)
}

// chipmunkDrawer renders chipmunk shapes through the camera.
type chipmunkDrawer struct {
	screen *ebiten.Image
	camera *view.Camera
}

func (d *chipmunkDrawer) line(a, b cp.Vector, c color.Color) {
	x0, y0 := d.camera.WorldToScreen(a)
	x1, y1 := d.camera.WorldToScreen(b)
	vector.StrokeLine(d.screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, false)
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, c)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(fill)
	l := size / 2 / d.camera.Zoom()
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(common.Clamp(float64(v), 0, 1) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
