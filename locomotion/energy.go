package locomotion

import (
	"log"
	"math"
	"time"

	"github.com/milk9111/mechlite/common"
	"github.com/milk9111/mechlite/event"
	"github.com/milk9111/mechlite/tuning"
)

// EnergyEpsilon is the smallest change worth an EnergyChanged event.
const EnergyEpsilon = 0.01

// EnergyPool is a regenerating resource. current stays within [0, max].
type EnergyPool struct {
	cfg    tuning.Energy
	clock  common.Clock
	stats  StatProvider
	events *event.Channel

	current  float64
	max      float64
	reported float64

	lastConsumedAt time.Duration
	consumed       bool

	Debug bool
}

func NewEnergyPool(cfg tuning.Energy, clock common.Clock, stats StatProvider, events *event.Channel) *EnergyPool {
	if clock == nil {
		log.Printf("EnergyPool: missing clock, regen delay measured against a frozen clock")
		clock = common.NewSimClock()
	}
	p := &EnergyPool{
		cfg:    cfg,
		clock:  clock,
		stats:  stats,
		events: events,
	}
	p.max = nonNegative(cfg.Max)
	if m, ok := p.polledMax(); ok {
		p.max = m
	}
	p.current = p.max
	p.publish(p.current, event.EnergyInitialization, "")
	return p
}

func nonNegative(v float64) float64 {
	v = common.Finite(v)
	if v < 0 {
		return 0
	}
	return v
}

func (p *EnergyPool) polledMax() (float64, bool) {
	if p.stats == nil {
		return 0, false
	}
	m := p.stats.MaxEnergy()
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		return 0, false
	}
	return m, true
}

func (p *EnergyPool) publish(delta float64, reason event.EnergyChangeReason, consumer string) {
	p.reported = p.current
	p.events.PublishEnergyChanged(event.EnergyChanged{
		Current:  p.current,
		Max:      p.max,
		Delta:    delta,
		Reason:   reason,
		Consumer: consumer,
	})
}

func (p *EnergyPool) Current() float64 {
	if p == nil {
		return 0
	}
	return p.current
}

func (p *EnergyPool) Max() float64 {
	if p == nil {
		return 0
	}
	return p.max
}

func (p *EnergyPool) Percent() float64 {
	if p == nil || p.max <= 0 {
		return 0
	}
	return p.current / p.max
}

// LastConsumedAt is the clock time of the last successful consumption.
func (p *EnergyPool) LastConsumedAt() (time.Duration, bool) {
	if p == nil {
		return 0, false
	}
	return p.lastConsumedAt, p.consumed
}

// HasEnergy reports current >= cost. Negative and non-finite costs are
// never affordable.
func (p *EnergyPool) HasEnergy(cost float64) bool {
	if p == nil || math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return false
	}
	return p.current >= cost
}

func (p *EnergyPool) Consume(cost float64) bool {
	return p.ConsumeAs("", cost)
}

// ConsumeAs subtracts cost and tags the event with consumer. It returns false
// and changes nothing when the cost is unaffordable. A zero cost succeeds
// without touching the regen delay.
func (p *EnergyPool) ConsumeAs(consumer string, cost float64) bool {
	if !p.HasEnergy(cost) {
		if p != nil && p.Debug {
			log.Printf("EnergyPool: %q cannot pay %.2f (have %.2f)", consumer, cost, p.current)
		}
		return false
	}
	if cost == 0 {
		return true
	}
	before := p.current
	p.current -= cost
	if p.current < 0 {
		p.current = 0
	}
	p.lastConsumedAt = p.clock.Now()
	p.consumed = true
	p.publish(p.current-before, event.EnergyConsumption, consumer)
	return true
}

// regenReadyAt is when regeneration may resume after the last consumption.
func (p *EnergyPool) regenReadyAt() time.Duration {
	if !p.consumed {
		return 0
	}
	return p.lastConsumedAt + p.cfg.RegenDelay
}

// IsRegenerating reports whether a Regenerate call right now would add energy.
func (p *EnergyPool) IsRegenerating() bool {
	if p == nil || p.current >= p.max || !(p.cfg.RegenRate > 0) {
		return false
	}
	return p.clock.Now() >= p.regenReadyAt()
}

// Regenerate credits regenRate for the part of dt that falls after the regen
// delay deadline. Small changes accumulate until they pass EnergyEpsilon.
func (p *EnergyPool) Regenerate(dt time.Duration) {
	if p == nil || dt <= 0 || p.current >= p.max {
		return
	}
	rate := common.Finite(p.cfg.RegenRate)
	if rate <= 0 {
		return
	}
	now := p.clock.Now()
	ready := p.regenReadyAt()
	if now < ready {
		return
	}
	credit := dt
	if p.consumed && now-ready < credit {
		credit = now - ready
	}
	gain := common.Finite(rate * credit.Seconds())
	if gain <= 0 {
		return
	}
	p.current = math.Min(p.current+gain, p.max)
	delta := p.current - p.reported
	if math.Abs(delta) > EnergyEpsilon {
		p.publish(delta, event.EnergyRegeneration, "")
	}
}

// SetMax replaces max. When current no longer fits it is clamped down and an
// event is emitted.
func (p *EnergyPool) SetMax(newMax float64) {
	if p == nil || math.IsNaN(newMax) || math.IsInf(newMax, 0) || newMax < 0 {
		return
	}
	p.max = newMax
	if p.current > newMax {
		before := p.current
		p.current = newMax
		p.publish(p.current-before, event.EnergyMaxChanged, "")
	}
}

// SyncMax polls the stat provider and applies a changed max.
func (p *EnergyPool) SyncMax() {
	if p == nil {
		return
	}
	m, ok := p.polledMax()
	if !ok || math.Abs(m-p.max) <= EnergyEpsilon {
		return
	}
	p.SetMax(m)
}

// ForceSet sets current directly, clamped to [0, max]. For tests and cheats.
func (p *EnergyPool) ForceSet(amount float64) {
	if p == nil || math.IsNaN(amount) {
		return
	}
	before := p.current
	p.current = common.Clamp(amount, 0, p.max)
	if p.current != before {
		p.publish(p.current-before, event.EnergyConfigurationChange, "")
	}
}

func (p *EnergyPool) ResetToMax() {
	if p == nil || p.current == p.max {
		return
	}
	before := p.current
	p.current = p.max
	p.publish(p.current-before, event.EnergyInitialization, "")
}

// SetConfig swaps the tunables. Without a stat provider the configured max
// applies immediately.
func (p *EnergyPool) SetConfig(cfg tuning.Energy) {
	if p == nil {
		return
	}
	p.cfg = cfg
	if p.stats == nil {
		p.SetMax(nonNegative(cfg.Max))
	}
}

// Tick is the per logic tick update: poll max, then regenerate when enabled.
func (p *EnergyPool) Tick(dt time.Duration) {
	if p == nil {
		return
	}
	p.SyncMax()
	if p.cfg.AutoRegenerate {
		p.Regenerate(dt)
	}
}
