package system

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrLattice is returned when the particle count cannot fill whole FCC
// unit cells.
var ErrLattice = errors.New("system: particle count must be 4c^3 for an fcc lattice")

// fcc basis, in unit-cell fractions.
var fccBasis = [4][3]float64{
	{0.25, 0.25, 0.25},
	{0.25, 0.75, 0.75},
	{0.75, 0.25, 0.75},
	{0.75, 0.75, 0.25},
}

// Lattice builds n particles on a face-centered-cubic lattice at the given
// reduced density. n must equal 4c^3 for an integer number c of unit cells
// per axis (32, 108, 256, 500, ...). Velocities are zero; call Thermalize
// to seed them.
func Lattice(n int, rho float64) (*System, error) {
	c := int(math.Round(math.Cbrt(float64(n) / 4)))
	if c < 1 || 4*c*c*c != n {
		return nil, fmt.Errorf("%w: got %d", ErrLattice, n)
	}
	box := math.Cbrt(float64(n) / rho)
	s := New(n, box)

	a := box / float64(c)
	i := 0
	for ix := 0; ix < c; ix++ {
		for iy := 0; iy < c; iy++ {
			for iz := 0; iz < c; iz++ {
				for _, b := range fccBasis {
					s.R[3*i] = a*(float64(ix)+b[0]) - box/2
					s.R[3*i+1] = a*(float64(iy)+b[1]) - box/2
					s.R[3*i+2] = a*(float64(iz)+b[2]) - box/2
					i++
				}
			}
		}
	}
	return s, nil
}

// Thermalize draws normal velocities, removes the center-of-mass drift,
// and rescales so the kinetic temperature equals t exactly.
func (s *System) Thermalize(t float64, rng *rand.Rand) {
	sigma := math.Sqrt(t)
	for i := range s.V {
		s.V[i] = sigma * rng.NormFloat64()
	}
	px, py, pz := s.Momentum()
	n := float64(s.N)
	for i := 0; i < s.N; i++ {
		s.V[3*i] -= px / n
		s.V[3*i+1] -= py / n
		s.V[3*i+2] -= pz / n
	}
	cur := s.Temperature()
	if cur == 0 {
		return
	}
	scale := math.Sqrt(t / cur)
	for i := range s.V {
		s.V[i] *= scale
	}
}
