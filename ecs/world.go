// Package ecs hosts the simulation: entities, component stores, ordered
// systems, and the per-world clock and event channel.
package ecs

import (
	"time"

	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/ecs/component"
	"github.com/milk9111/mechlite/event"
)

// System updates a world once per frame.
type System interface {
	Update(w *World)
}

// World owns entities, components and system order. Every world has its own
// clock and event channel so several can run side by side.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System

	clock  *common.SimClock
	fixed  *common.FixedStep
	events *event.Channel

	frameDt time.Duration
	steps   int
}

// NewWorld creates an empty world stepping physics at fixedStep.
func NewWorld(fixedStep time.Duration) *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		clock:  common.NewSimClock(),
		fixed:  common.NewFixedStep(fixedStep, 0),
		events: event.NewChannel(),
	}
}

func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update advances the clock by dt, works out how many fixed steps are due and
// runs every system once in order.
func (w *World) Update(dt time.Duration) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.clock.Advance(dt)
	w.frameDt = dt
	w.steps = w.fixed.Accumulate(dt)
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Clock is the world's simulation clock.
func (w *World) Clock() *common.SimClock {
	if w == nil {
		return nil
	}
	return w.clock
}

// Events is the world's event channel.
func (w *World) Events() *event.Channel {
	if w == nil {
		return nil
	}
	return w.events
}

// FrameDelta is the dt passed to the current Update.
func (w *World) FrameDelta() time.Duration {
	if w == nil {
		return 0
	}
	return w.frameDt
}

// FixedSteps is how many fixed physics steps the current frame owes.
func (w *World) FixedSteps() int {
	if w == nil {
		return 0
	}
	return w.steps
}

// FixedDelta is the fixed physics step.
func (w *World) FixedDelta() time.Duration {
	if w == nil {
		return 0
	}
	return w.fixed.Step()
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s := w.stores[id]
	if s == nil && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity drops e and all of its components. It reports false for a
// dead or stale handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}
