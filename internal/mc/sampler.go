// Package mc samples hard-sphere configurations in the constant-NVT
// ensemble. Trial moves displace one particle at a time and are rejected
// whenever spheres of diameter 1 would overlap; with kT = 1 the
// temperature drops out entirely. The pressure follows from counting the
// overlaps a slight box compression would create.
package mc

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	ErrOverlap = errors.New("mc: overlapping configuration")
	ErrMove    = errors.New("mc: dr_max and eps_box must be positive")
	ErrCounts  = errors.New("mc: blocks and steps must be positive")
)

// Sampler holds the positions of n hard spheres in a cubic periodic box.
// Positions stay wrapped in [-box/2, box/2) between sweeps.
type Sampler struct {
	n     int
	box   float64
	r     []float64
	drMax float64
	rng   *rand.Rand
}

// NewSampler copies the start configuration and rejects it if any pair
// of spheres already overlaps.
func NewSampler(box float64, r []float64, drMax float64, rng *rand.Rand) (*Sampler, error) {
	if drMax <= 0 {
		return nil, fmt.Errorf("%w: dr_max=%g", ErrMove, drMax)
	}
	if len(r) == 0 || len(r)%3 != 0 {
		return nil, fmt.Errorf("mc: position array length %d is not a multiple of 3", len(r))
	}

	s := &Sampler{
		n:     len(r) / 3,
		box:   box,
		r:     append([]float64(nil), r...),
		drMax: drMax,
		rng:   rng,
	}
	s.wrap()
	if k := s.Overlaps(); k > 0 {
		return nil, fmt.Errorf("%w: %d overlapping pairs at start", ErrOverlap, k)
	}
	return s, nil
}

func (s *Sampler) N() int           { return s.n }
func (s *Sampler) Box() float64     { return s.box }
func (s *Sampler) Density() float64 { return float64(s.n) / (s.box * s.box * s.box) }

// Positions returns the live position array; callers must not hold it
// across sweeps.
func (s *Sampler) Positions() []float64 { return s.r }

func (s *Sampler) wrap() {
	for i, x := range s.r {
		s.r[i] = x - s.box*math.Round(x/s.box)
	}
}

// Sweep attempts one trial move per particle and returns the fraction
// accepted. Each trial displaces every coordinate uniformly within
// [-drMax, drMax].
func (s *Sampler) Sweep() float64 {
	moves := 0
	for i := 0; i < s.n; i++ {
		x := s.r[3*i] + s.drMax*(2*s.rng.Float64()-1)
		y := s.r[3*i+1] + s.drMax*(2*s.rng.Float64()-1)
		z := s.r[3*i+2] + s.drMax*(2*s.rng.Float64()-1)
		x -= s.box * math.Round(x/s.box)
		y -= s.box * math.Round(y/s.box)
		z -= s.box * math.Round(z/s.box)

		if !s.overlapsOthers(i, x, y, z) {
			s.r[3*i], s.r[3*i+1], s.r[3*i+2] = x, y, z
			moves++
		}
	}
	return float64(moves) / float64(s.n)
}

func (s *Sampler) overlapsOthers(i int, x, y, z float64) bool {
	for j := 0; j < s.n; j++ {
		if j == i {
			continue
		}
		dx := x - s.r[3*j]
		dy := y - s.r[3*j+1]
		dz := z - s.r[3*j+2]
		dx -= s.box * math.Round(dx/s.box)
		dy -= s.box * math.Round(dy/s.box)
		dz -= s.box * math.Round(dz/s.box)
		if dx*dx+dy*dy+dz*dz < 1 {
			return true
		}
	}
	return false
}

// countWithin counts pairs closer than the given distance.
func (s *Sampler) countWithin(limit float64) int {
	limit2 := limit * limit
	count := 0
	for i := 0; i < s.n-1; i++ {
		for j := i + 1; j < s.n; j++ {
			dx := s.r[3*i] - s.r[3*j]
			dy := s.r[3*i+1] - s.r[3*j+1]
			dz := s.r[3*i+2] - s.r[3*j+2]
			dx -= s.box * math.Round(dx/s.box)
			dy -= s.box * math.Round(dy/s.box)
			dz -= s.box * math.Round(dz/s.box)
			if dx*dx+dy*dy+dz*dz < limit2 {
				count++
			}
		}
	}
	return count
}

// Overlaps counts pairs of overlapping spheres; a valid configuration
// has none.
func (s *Sampler) Overlaps() int { return s.countWithin(1) }

// Pressure estimates P in units kT/sigma**3 as the ideal part plus the
// virial obtained from the overlaps created by compressing the box by
// 1+epsBox.
func (s *Sampler) Pressure(epsBox float64) float64 {
	vir := float64(s.countWithin(1+epsBox)) / (3 * epsBox)
	vol := s.box * s.box * s.box
	return s.Density() + vir/vol
}
