// Package system owns the mutable particle state of a simulation run:
// positions and velocities as flat length-3N arrays in reduced units,
// inside a cubic periodic box of edge Box centered on the origin.
package system

import (
	"errors"
	"fmt"
	"math"
)

// ErrSize is returned when position or velocity arrays do not hold a whole
// number of 3-component vectors, or disagree with each other.
var ErrSize = errors.New("system: position and velocity arrays must hold 3n values")

// System is the particle ensemble. R and V are indexed as [3*i+axis]. The
// integrator owns a System exclusively for the duration of a run.
type System struct {
	N   int
	Box float64
	R   []float64
	V   []float64
}

// New returns a system of n particles at the origin with zero velocities.
func New(n int, box float64) *System {
	return &System{
		N:   n,
		Box: box,
		R:   make([]float64, 3*n),
		V:   make([]float64, 3*n),
	}
}

// FromArrays wraps existing flat arrays in a System. A nil v is replaced
// with zero velocities. The arrays are adopted, not copied.
func FromArrays(box float64, r, v []float64) (*System, error) {
	if len(r) == 0 || len(r)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d positions", ErrSize, len(r))
	}
	if v == nil {
		v = make([]float64, len(r))
	}
	if len(v) != len(r) {
		return nil, fmt.Errorf("%w: %d positions vs %d velocities", ErrSize, len(r), len(v))
	}
	return &System{N: len(r) / 3, Box: box, R: r, V: v}, nil
}

// Clone deep-copies the system.
func (s *System) Clone() *System {
	c := &System{N: s.N, Box: s.Box}
	c.R = append([]float64(nil), s.R...)
	c.V = append([]float64(nil), s.V...)
	return c
}

// Wrap folds every position back into [-Box/2, Box/2) under the minimum
// image convention.
func (s *System) Wrap() {
	for i := range s.R {
		s.R[i] -= s.Box * math.Round(s.R[i]/s.Box)
	}
}

// Kinetic returns the total kinetic energy (unit mass).
func (s *System) Kinetic() float64 {
	k := 0.0
	for _, v := range s.V {
		k += v * v
	}
	return 0.5 * k
}

// Temperature returns the instantaneous kinetic temperature
// 2*KE/(3(N-1)), with kB = 1.
func (s *System) Temperature() float64 {
	if s.N < 2 {
		return 0
	}
	return 2 * s.Kinetic() / (3 * float64(s.N-1))
}

// Momentum returns the total momentum per axis.
func (s *System) Momentum() (px, py, pz float64) {
	for i := 0; i < s.N; i++ {
		px += s.V[3*i]
		py += s.V[3*i+1]
		pz += s.V[3*i+2]
	}
	return px, py, pz
}

// Density returns N / Box^3.
func (s *System) Density() float64 {
	return float64(s.N) / (s.Box * s.Box * s.Box)
}
