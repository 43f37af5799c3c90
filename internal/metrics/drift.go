package metrics

import "math"

// Drift tracks the worst relative excursion of a conserved quantity from
// its first observed value.
type Drift struct {
	ref float64
	max float64
	set bool
}

// Observe records one value. The first call fixes the reference.
func (d *Drift) Observe(v float64) {
	if !d.set {
		d.ref = v
		d.set = true
		return
	}
	denom := math.Abs(d.ref)
	if denom == 0 {
		denom = 1
	}
	if rel := math.Abs(v-d.ref) / denom; rel > d.max {
		d.max = rel
	}
}

// Max returns the largest relative deviation seen so far.
func (d *Drift) Max() float64 {
	return d.max
}
