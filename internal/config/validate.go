package config

import (
	"errors"
	"fmt"
)

var (
	ErrCounts      = errors.New("config: blocks and steps must be positive")
	ErrStep        = errors.New("config: dt must be positive")
	ErrCutoffs     = errors.New("config: cutoffs must be strictly increasing")
	ErrHealing     = errors.New("config: healing must be positive and smaller than the first cutoff")
	ErrGap         = errors.New("config: shell gap narrower than the healing length")
	ErrStrides     = errors.New("config: one stride per cutoff required")
	ErrBaseStride  = errors.New("config: innermost stride must be 1")
	ErrStride      = errors.New("config: strides must be positive")
	ErrWorkers     = errors.New("config: workers must be non-negative")
	ErrThermostat  = errors.New("config: unknown thermostat")
	ErrTemperature = errors.New("config: thermostat temperature must be positive")
	ErrTau         = errors.New("config: berendsen tau must be positive")
	ErrMove        = errors.New("config: dr_max and eps_box must be positive")
)

// Validate checks every run parameter that can be judged without knowing
// the box size. Box-dependent rules (outer cutoff against the half box,
// grid coarseness) are enforced when the force field is built.
func (c *Run) Validate() error {
	if c.Blocks < 1 || c.Steps < 1 {
		return fmt.Errorf("%w: blocks=%d steps=%d", ErrCounts, c.Blocks, c.Steps)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt=%g", ErrStep, c.Dt)
	}
	if len(c.Cutoffs) == 0 {
		return fmt.Errorf("%w: none given", ErrCutoffs)
	}
	for k := 1; k < len(c.Cutoffs); k++ {
		if c.Cutoffs[k] <= c.Cutoffs[k-1] {
			return fmt.Errorf("%w: cutoff %d (%g) after %g", ErrCutoffs, k+1, c.Cutoffs[k], c.Cutoffs[k-1])
		}
	}
	if c.Healing <= 0 || c.Healing >= c.Cutoffs[0] {
		return fmt.Errorf("%w: healing=%g first cutoff=%g", ErrHealing, c.Healing, c.Cutoffs[0])
	}
	for k := 1; k < len(c.Cutoffs); k++ {
		if gap := c.Cutoffs[k] - c.Cutoffs[k-1]; gap < c.Healing {
			return fmt.Errorf("%w: shells %d and %d are %g apart, healing=%g", ErrGap, k, k+1, gap, c.Healing)
		}
	}
	if len(c.Strides) != len(c.Cutoffs) {
		return fmt.Errorf("%w: %d strides for %d cutoffs", ErrStrides, len(c.Strides), len(c.Cutoffs))
	}
	for k, n := range c.Strides {
		if n < 1 {
			return fmt.Errorf("%w: stride %d is %d", ErrStride, k+1, n)
		}
	}
	if c.Strides[0] != 1 {
		return fmt.Errorf("%w: got %d", ErrBaseStride, c.Strides[0])
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers=%d", ErrWorkers, c.Workers)
	}
	return c.Equilibration.validate()
}

func (e *Equilibration) validate() error {
	if e.Blocks < 0 {
		return fmt.Errorf("%w: equilibration blocks=%d", ErrCounts, e.Blocks)
	}
	switch e.Thermostat {
	case "", "none", "rescale", "berendsen":
	default:
		return fmt.Errorf("%w: %q", ErrThermostat, e.Thermostat)
	}
	if e.Blocks == 0 || e.Thermostat == "" || e.Thermostat == "none" {
		return nil
	}
	if e.Temperature <= 0 {
		return fmt.Errorf("%w: got %g", ErrTemperature, e.Temperature)
	}
	if e.Thermostat == "berendsen" && e.Tau <= 0 {
		return fmt.Errorf("%w: got %g", ErrTau, e.Tau)
	}
	return nil
}

// Validate checks the Monte Carlo parameters.
func (c *MC) Validate() error {
	if c.Blocks < 1 || c.Steps < 1 {
		return fmt.Errorf("%w: blocks=%d steps=%d", ErrCounts, c.Blocks, c.Steps)
	}
	if c.DrMax <= 0 || c.EpsBox <= 0 {
		return fmt.Errorf("%w: dr_max=%g eps_box=%g", ErrMove, c.DrMax, c.EpsBox)
	}
	return nil
}
