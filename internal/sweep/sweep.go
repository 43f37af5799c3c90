// Package sweep scans a density range with short molecular dynamics runs
// and tabulates the equation of state.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/physics"
	"github.com/san-kum/mdsim/internal/sim"
	"github.com/san-kum/mdsim/internal/system"
	"github.com/san-kum/mdsim/internal/thermostat"
)

var (
	ErrRange  = errors.New("sweep: density range must be positive and ascending")
	ErrPoints = errors.New("sweep: at least one point required")
)

// Config describes a density scan: Points state points evenly spaced from
// RhoMin to RhoMax, each started from a fresh lattice of Particles and run
// with the given parameters.
type Config struct {
	RhoMin    float64
	RhoMax    float64
	Points    int
	Particles int
	Run       *config.Run
}

// Point is the equation-of-state estimate at one density.
type Point struct {
	Rho   float64
	EN    float64
	T     float64
	P     float64
	Drift float64
}

func (c *Config) Validate() error {
	if c.RhoMin <= 0 || c.RhoMax < c.RhoMin {
		return fmt.Errorf("%w: [%g, %g]", ErrRange, c.RhoMin, c.RhoMax)
	}
	if c.Points < 1 {
		return fmt.Errorf("%w: got %d", ErrPoints, c.Points)
	}
	return c.Run.Validate()
}

// Run executes the scan. onPoint, when non-nil, is called after each
// density finishes. A single point runs at RhoMin.
func Run(ctx context.Context, cfg *Config, onPoint func(Point)) ([]Point, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	step := 0.0
	if cfg.Points > 1 {
		step = (cfg.RhoMax - cfg.RhoMin) / float64(cfg.Points-1)
	}

	points := make([]Point, 0, cfg.Points)
	for i := 0; i < cfg.Points; i++ {
		rho := cfg.RhoMin + float64(i)*step

		p, err := runPoint(ctx, cfg, rho)
		if err != nil {
			return points, fmt.Errorf("sweep: rho %.4f: %w", rho, err)
		}
		points = append(points, p)
		if onPoint != nil {
			onPoint(p)
		}
	}
	return points, nil
}

func runPoint(ctx context.Context, cfg *Config, rho float64) (Point, error) {
	rc := cfg.Run

	sys, err := system.Lattice(cfg.Particles, rho)
	if err != nil {
		return Point{}, err
	}
	sys.Thermalize(rc.Equilibration.Temperature, rand.New(rand.NewSource(rc.Seed)))

	field, err := physics.NewField(rc.Cutoffs, rc.Healing, sys.Box, rc.Workers)
	if err != nil {
		return Point{}, err
	}
	mts, err := sim.NewIntegrator(sys, field, rc.Strides, rc.Dt)
	if err != nil {
		return Point{}, err
	}

	var thermo thermostat.Thermostat
	switch rc.Equilibration.Thermostat {
	case "rescale":
		thermo = thermostat.Rescale{T: rc.Equilibration.Temperature}
	case "berendsen":
		thermo = thermostat.Berendsen{T: rc.Equilibration.Temperature, Tau: rc.Equilibration.Tau, Dt: mts.Span()}
	}

	var tailE, tailP float64
	if rc.TailCorrection {
		tailE = physics.PotentialTail(rho, field.Outer())
		tailP = physics.PressureTail(rho, field.Outer())
	}

	runner := &sim.Runner{
		Mts:    mts,
		Blocks: rc.Blocks,
		Steps:  rc.Steps,
		Equil:  rc.Equilibration.Blocks,
		Thermo: thermo,
		TailE:  tailE,
		TailP:  tailP,
	}
	res, err := runner.Run(ctx)
	if err != nil {
		return Point{}, err
	}

	sum := res.Summary
	return Point{Rho: rho, EN: sum.Mean[0], T: sum.Mean[1], P: sum.Mean[2], Drift: res.Drift}, nil
}
