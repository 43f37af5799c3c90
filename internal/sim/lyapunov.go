package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/mdsim/internal/system"
)

var ErrPerturbation = errors.New("sim: perturbation must be positive")

// Lyapunov estimates the largest Lyapunov exponent of the trajectory by
// the shadow method: a copy of the system displaced by d0 in one
// coordinate is advanced in lockstep, and the growth of the phase-space
// separation is accumulated with renormalization after every outer step.
// A positive exponent means neighbouring trajectories diverge.
//
// The integrator itself is advanced by steps outer steps in the process.
func Lyapunov(m *Integrator, d0 float64, steps int) (float64, error) {
	if d0 <= 0 {
		return 0, fmt.Errorf("%w: d0=%g", ErrPerturbation, d0)
	}
	if steps < 1 {
		return 0, fmt.Errorf("%w: steps=%d", ErrCounts, steps)
	}

	shadow := m.sys.Clone()
	shadow.R[0] += d0
	shadow.Wrap()
	sm, err := NewIntegrator(shadow, m.field, m.strides, m.dt)
	if err != nil {
		return 0, err
	}

	sumLog := 0.0
	for s := 0; s < steps; s++ {
		m.Step()
		sm.Step()

		sep := separation(m.sys, shadow)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)

		rescaleToward(shadow, m.sys, d0/sep)
		sm.refresh()
	}

	return sumLog / (float64(steps) * m.Span()), nil
}

// separation is the phase-space distance between two copies of the same
// system; position differences use the minimum image.
func separation(a, b *system.System) float64 {
	sum := 0.0
	for i := range a.R {
		d := b.R[i] - a.R[i]
		d -= a.Box * math.Round(d/a.Box)
		sum += d * d
	}
	for i := range a.V {
		d := b.V[i] - a.V[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// rescaleToward shrinks the displacement of shadow from ref by scale,
// keeping its direction in phase space.
func rescaleToward(shadow, ref *system.System, scale float64) {
	for i := range ref.R {
		d := shadow.R[i] - ref.R[i]
		d -= ref.Box * math.Round(d/ref.Box)
		shadow.R[i] = ref.R[i] + d*scale
	}
	for i := range ref.V {
		shadow.V[i] = ref.V[i] + (shadow.V[i]-ref.V[i])*scale
	}
	shadow.Wrap()
}
