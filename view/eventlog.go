package view

import (
	"fmt"
	"time"

	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
)

const DefaultLogLines = 8

// EventLog keeps the most recent locomotion events as printable lines.
// Moved arrives every physics tick, so it is tracked rather than logged, and
// regeneration ticks are folded into the energy readout.
type EventLog struct {
	clock common.Clock
	limit int
	lines []string

	lastMove event.Moved
	moves    int
	energy   event.EnergyChanged

	unsubs []func()
}

func NewEventLog(ch *event.Channel, clock common.Clock, limit int) *EventLog {
	if limit <= 0 {
		limit = DefaultLogLines
	}
	l := &EventLog{clock: clock, limit: limit}
	if ch == nil {
		return l
	}
	l.unsubs = append(l.unsubs,
		ch.Moved.Subscribe(func(evt event.Moved) {
			l.lastMove = evt
			l.moves++
		}),
		ch.Jumped.Subscribe(func(evt event.Jumped) {
			l.addf("jump  vy=%.2f coyote=%t buffered=%t", evt.Velocity.Y, evt.UsedCoyote, evt.UsedBuffer)
		}),
		ch.Dashed.Subscribe(func(evt event.Dashed) {
			l.addf("dash  dir=(%.2f,%.2f) cost=%.0f left=%.0f", evt.Direction.X, evt.Direction.Y, evt.EnergyConsumed, evt.EnergyRemaining)
		}),
		ch.GroundChanged.Subscribe(func(evt event.GroundChanged) {
			if evt.Grounded {
				l.addf("land  after %s", evt.SinceGrounded.Round(time.Millisecond))
				return
			}
			l.addf("leave ground at (%.2f,%.2f)", evt.Position.X, evt.Position.Y)
		}),
		ch.EnergyChanged.Subscribe(func(evt event.EnergyChanged) {
			l.energy = evt
			if evt.Reason == event.EnergyRegeneration {
				return
			}
			if evt.Consumer != "" {
				l.addf("energy %s %+.1f by %s -> %.1f", evt.Reason, evt.Delta, evt.Consumer, evt.Current)
				return
			}
			l.addf("energy %s %+.1f -> %.1f/%.0f", evt.Reason, evt.Delta, evt.Current, evt.Max)
		}),
	)
	return l
}

func (l *EventLog) addf(format string, args ...any) {
	var stamp time.Duration
	if l.clock != nil {
		stamp = l.clock.Now()
	}
	line := fmt.Sprintf("%7.3fs %s", common.Seconds(stamp), fmt.Sprintf(format, args...))
	l.lines = append(l.lines, line)
	if over := len(l.lines) - l.limit; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Lines returns logged events, oldest first.
func (l *EventLog) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// LastMove returns the latest Moved event and how many have been seen.
func (l *EventLog) LastMove() (event.Moved, int) {
	return l.lastMove, l.moves
}

// Energy returns the latest energy event, regeneration included.
func (l *EventLog) Energy() event.EnergyChanged {
	return l.energy
}

// Close unsubscribes from the channel.
func (l *EventLog) Close() {
	for _, unsub := range l.unsubs {
		unsub()
	}
	l.unsubs = nil
}
