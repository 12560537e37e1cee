package main

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/milk9111/mechlite/ecs/component"
	"gopkg.in/yaml.v3"
)

const defaultDuration = 3 * time.Second

var ErrEmptyTimeline = errors.New("simulate: timeline has no steps")

// Step changes the held stick at At and optionally presses buttons once.
type Step struct {
	At    time.Duration `yaml:"at"`
	MoveX float64       `yaml:"move_x"`
	MoveY float64       `yaml:"move_y"`
	Jump  bool          `yaml:"jump"`
	Dash  bool          `yaml:"dash"`
}

type Timeline struct {
	Duration time.Duration `yaml:"duration"`
	Steps    []Step        `yaml:"steps"`
}

func ParseTimeline(data []byte) (Timeline, error) {
	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return Timeline{}, fmt.Errorf("simulate: unmarshal timeline: %w", err)
	}
	if len(tl.Steps) == 0 {
		return Timeline{}, ErrEmptyTimeline
	}
	if tl.Duration <= 0 {
		tl.Duration = defaultDuration
	}
	slices.SortStableFunc(tl.Steps, func(a, b Step) int {
		return cmp.Compare(a.At, b.At)
	})
	return tl, nil
}

// playback turns a timeline into per-frame input samples.
type playback struct {
	steps []Step
	next  int
	held  component.Input
}

func newPlayback(tl Timeline) *playback {
	return &playback{steps: tl.Steps}
}

// Sample applies every step due by now. Presses only appear on the frame
// their step fires.
func (p *playback) Sample(now time.Duration) component.Input {
	in := p.held
	for p.next < len(p.steps) && p.steps[p.next].At <= now {
		s := p.steps[p.next]
		p.held.MoveX = s.MoveX
		p.held.MoveY = s.MoveY
		in.MoveX = s.MoveX
		in.MoveY = s.MoveY
		in.JumpPressed = in.JumpPressed || s.Jump
		in.DashPressed = in.DashPressed || s.Dash
		p.next++
	}
	return in
}
