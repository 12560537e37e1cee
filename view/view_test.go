package view

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
)

func TestCameraWorldToScreen(t *testing.T) {
	cam := NewCamera(200, 100, 10)
	cam.SetSmooth(0)
	cam.SnapTo(cp.Vector{X: 5, Y: 5})

	tests := []struct {
		name  string
		world cp.Vector
		x, y  float64
	}{
		{"center", cp.Vector{X: 5, Y: 5}, 100, 50},
		{"one unit up", cp.Vector{X: 5, Y: 6}, 100, 40},
		{"one unit right", cp.Vector{X: 6, Y: 5}, 110, 50},
		{"origin", cp.Vector{}, 50, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := cam.WorldToScreen(tc.world)
			if math.Abs(x-tc.x) > 1e-9 || math.Abs(y-tc.y) > 1e-9 {
				t.Fatalf("WorldToScreen(%v) = (%v,%v), want (%v,%v)", tc.world, x, y, tc.x, tc.y)
			}
		})
	}
}

func TestCameraScreenRectFlipsY(t *testing.T) {
	cam := NewCamera(200, 100, 10)
	cam.SnapTo(cp.Vector{X: 5, Y: 5})
	x, y, w, h := cam.ScreenRect(cp.BB{L: 5, B: 5, R: 6, T: 7})
	if x != 100 || y != 30 || w != 10 || h != 20 {
		t.Fatalf("ScreenRect = (%v,%v,%v,%v), want (100,30,10,20)", x, y, w, h)
	}
}

func TestCameraClampsToWorld(t *testing.T) {
	tests := []struct {
		name         string
		worldW       float64
		worldH       float64
		target       cp.Vector
		wantX, wantY float64
	}{
		// view is 20x10 units
		{"inside", 40, 40, cp.Vector{X: 20, Y: 20}, 20, 20},
		{"left edge", 40, 40, cp.Vector{X: 0, Y: 20}, 10, 20},
		{"top edge", 40, 40, cp.Vector{X: 20, Y: 100}, 20, 35},
		{"world narrower than view", 8, 40, cp.Vector{X: 100, Y: 20}, 4, 20},
		{"unbounded", 0, 0, cp.Vector{X: -50, Y: -50}, -50, -50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(200, 100, 10)
			cam.SetWorldBounds(tc.worldW, tc.worldH)
			cam.SnapTo(tc.target)
			if cam.PosX != tc.wantX || cam.PosY != tc.wantY {
				t.Fatalf("camera at (%v,%v), want (%v,%v)", cam.PosX, cam.PosY, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestCameraFollowEases(t *testing.T) {
	cam := NewCamera(200, 100, 10)
	cam.SetSmooth(0.5)
	cam.Follow(cp.Vector{X: 10})
	if cam.PosX != 5 {
		t.Fatalf("after one follow PosX = %v, want 5", cam.PosX)
	}
	cam.SetSmooth(0)
	cam.Follow(cp.Vector{X: 10})
	if cam.PosX != 10 {
		t.Fatalf("unsmoothed follow PosX = %v, want 10", cam.PosX)
	}
}

func TestEventLogRecordsAndTrims(t *testing.T) {
	ch := event.NewChannel()
	clock := common.NewSimClock()
	log := NewEventLog(ch, clock, 3)
	defer log.Close()

	clock.Advance(1500 * time.Millisecond)
	ch.PublishJumped(event.Jumped{Velocity: cp.Vector{Y: 8}, UsedCoyote: true})
	ch.PublishDashed(event.Dashed{Direction: cp.Vector{X: 1}, EnergyConsumed: 25, EnergyRemaining: 75})
	ch.PublishGroundChanged(event.GroundChanged{Grounded: true, SinceGrounded: 400 * time.Millisecond})
	ch.PublishEnergyChanged(event.EnergyChanged{Current: 80, Max: 100, Delta: 5, Reason: event.EnergyRegeneration})
	ch.PublishEnergyChanged(event.EnergyChanged{Current: 55, Max: 100, Delta: -25, Reason: event.EnergyConsumption, Consumer: "dash"})

	lines := log.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "dash") || !strings.HasPrefix(strings.TrimSpace(lines[0]), "1.500s") {
		t.Fatalf("oldest kept line = %q, want the dash at 1.500s", lines[0])
	}
	if !strings.Contains(lines[1], "land") {
		t.Fatalf("middle line = %q, want landing", lines[1])
	}
	if !strings.Contains(lines[2], "by dash") {
		t.Fatalf("newest line = %q, want consumption by dash", lines[2])
	}
	if got := log.Energy().Current; got != 55 {
		t.Fatalf("Energy().Current = %v, want 55", got)
	}
}

func TestEventLogTracksMovesWithoutLogging(t *testing.T) {
	ch := event.NewChannel()
	log := NewEventLog(ch, nil, 0)
	for i := 0; i < 10; i++ {
		ch.PublishMoved(event.Moved{Velocity: cp.Vector{X: float64(i)}})
	}
	last, n := log.LastMove()
	if n != 10 || last.Velocity.X != 9 {
		t.Fatalf("LastMove = (%v,%d), want vx 9 after 10", last.Velocity, n)
	}
	if len(log.Lines()) != 0 {
		t.Fatalf("moves should not be logged, got %q", log.Lines())
	}

	log.Close()
	ch.PublishMoved(event.Moved{})
	if _, n := log.LastMove(); n != 10 {
		t.Fatalf("closed log still counting: %d", n)
	}
}
