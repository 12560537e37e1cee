package stats

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ResultVar is the global a stat script must assign.
const ResultVar = "max_energy"

var ErrNoResult = errors.New("stats: script did not set " + ResultVar)

// Script evaluates max energy with a tengo script. Inputs are plain globals
// (for example `base`, `level`) set through Set; the script is re-run only
// when an input changed since the last poll.
type Script struct {
	compiled *tengo.Compiled
	inputs   map[string]float64
	dirty    bool
	last     float64
	warned   bool
}

// NewScript compiles src with the given initial inputs. Every input the script
// reads must be declared here so tengo can resolve it at compile time.
func NewScript(src []byte, inputs map[string]float64) (*Script, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))

	vars := make(map[string]float64, len(inputs))
	for name, v := range inputs {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("stats: add %s: %w", name, err)
		}
		vars[name] = v
	}
	if err := script.Add(ResultVar, 0.0); err != nil {
		return nil, fmt.Errorf("stats: add %s: %w", ResultVar, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("stats: compile: %w", err)
	}

	s := &Script{compiled: compiled, inputs: vars, dirty: true}
	if _, err := s.eval(); err != nil {
		return nil, err
	}
	return s, nil
}

// Set updates an input. Unknown names are rejected because the compiled
// script cannot see them.
func (s *Script) Set(name string, value float64) error {
	if s == nil || s.compiled == nil {
		return errors.New("stats: script not compiled")
	}
	if _, ok := s.inputs[name]; !ok {
		return fmt.Errorf("stats: unknown input %q", name)
	}
	if s.inputs[name] == value {
		return nil
	}
	if err := s.compiled.Set(name, value); err != nil {
		return fmt.Errorf("stats: set %s: %w", name, err)
	}
	s.inputs[name] = value
	s.dirty = true
	return nil
}

// MaxEnergy returns the script result. A failing run keeps the last good
// value and logs once.
func (s *Script) MaxEnergy() float64 {
	if s == nil {
		return 0
	}
	if !s.dirty {
		return s.last
	}
	v, err := s.eval()
	if err != nil {
		if !s.warned {
			log.Printf("StatScript: %v; keeping max energy %.2f", err, s.last)
			s.warned = true
		}
		s.dirty = false
		return s.last
	}
	return v
}

func (s *Script) eval() (float64, error) {
	if err := s.compiled.Run(); err != nil {
		return 0, fmt.Errorf("stats: run: %w", err)
	}
	res := s.compiled.Get(ResultVar)
	if res == nil || res.IsUndefined() {
		return 0, ErrNoResult
	}
	v := res.Float()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("stats: %s out of range: %v", ResultVar, v)
	}
	s.last = v
	s.dirty = false
	return v, nil
}
