// Package thermostat provides temperature coupling for equilibration.
// Thermostats are applied between outer steps during warm-up blocks only;
// production dynamics stay strictly Hamiltonian.
package thermostat

import (
	"math"

	"github.com/san-kum/mdsim/internal/system"
)

// Thermostat nudges a system's kinetic temperature toward a target.
type Thermostat interface {
	Apply(s *system.System)
}

// Rescale sets the kinetic temperature to the target exactly at every
// application.
type Rescale struct {
	T float64
}

func (t Rescale) Apply(s *system.System) {
	cur := s.Temperature()
	if cur <= 0 {
		return
	}
	scale := math.Sqrt(t.T / cur)
	for i := range s.V {
		s.V[i] *= scale
	}
}

// Berendsen relaxes the temperature toward the target with time constant
// Tau, using the scaling factor sqrt(1 + dt/tau (T0/T - 1)) per step of
// length Dt.
type Berendsen struct {
	T   float64
	Tau float64
	Dt  float64
}

func (b Berendsen) Apply(s *system.System) {
	cur := s.Temperature()
	if cur <= 0 {
		return
	}
	scale := math.Sqrt(1 + b.Dt/b.Tau*(b.T/cur-1))
	for i := range s.V {
		s.V[i] *= scale
	}
}
