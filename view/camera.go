// Package view holds the sandbox's screen-side state: a camera that maps world
// units to pixels and a rolling log of locomotion events for the HUD.
package view

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/common"
)

// Camera maps world coordinates (y up, in tiles) onto a screen (y down, in
// pixels). Zoom is pixels per world unit.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow
	smooth float64
	// world bounds in world units (0 means unbounded)
	worldW float64
	worldH float64
}

func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15}
}

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// SetWorldBounds limits the view to [0,w]x[0,h].
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// Follow eases the camera toward target.
func (c *Camera) Follow(target cp.Vector) {
	if c.smooth <= 0 {
		c.PosX = target.X
		c.PosY = target.Y
	} else {
		c.PosX += (target.X - c.PosX) * c.smooth
		c.PosY += (target.Y - c.PosY) * c.smooth
	}
	c.settle()
}

// SnapTo centers the camera on target immediately.
func (c *Camera) SnapTo(target cp.Vector) {
	c.PosX = target.X
	c.PosY = target.Y
	c.settle()
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(p cp.Vector) (float64, float64) {
	x := (p.X-c.PosX)*c.zoom + float64(c.screenW)/2
	y := float64(c.screenH)/2 - (p.Y-c.PosY)*c.zoom
	return x, y
}

// ScreenRect returns the top-left corner and pixel size of bb on screen.
func (c *Camera) ScreenRect(bb cp.BB) (x, y, w, h float64) {
	x, y = c.WorldToScreen(cp.Vector{X: bb.L, Y: bb.T})
	return x, y, (bb.R - bb.L) * c.zoom, (bb.T - bb.B) * c.zoom
}

func (c *Camera) settle() {
	// snap to the pixel grid so tiles do not shimmer
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	halfW := float64(c.screenW) / c.zoom / 2
	halfH := float64(c.screenH) / c.zoom / 2
	if c.worldW > 0 {
		c.PosX = clampAxis(c.PosX, halfW, c.worldW)
	}
	if c.worldH > 0 {
		c.PosY = clampAxis(c.PosY, halfH, c.worldH)
	}
}

func clampAxis(pos, half, size float64) float64 {
	lo, hi := half, size-half
	if hi < lo {
		// world smaller than view: center on world
		return size / 2
	}
	return common.Clamp(pos, lo, hi)
}
