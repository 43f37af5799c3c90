package physics

import "math"

// PotentialTail returns the per-particle long-range correction for a
// Lennard-Jones potential truncated at rcut, assuming uniform pair
// correlation beyond the cutoff:
//
//	pi*rho*( (8/9) rcut^-9 - (8/3) rcut^-3 )
//
// It is a closed-form constant for a given (rho, rcut) and is meant to be
// added at reporting time, never inside the force loop.
func PotentialTail(rho, rcut float64) float64 {
	sr3 := 1 / (rcut * rcut * rcut)
	return math.Pi * rho * (8.0/9.0*sr3*sr3*sr3 - 8.0/3.0*sr3)
}

// PressureTail returns the matching long-range pressure correction:
//
//	pi*rho^2*( (32/9) rcut^-9 - (16/3) rcut^-3 )
func PressureTail(rho, rcut float64) float64 {
	sr3 := 1 / (rcut * rcut * rcut)
	return math.Pi * rho * rho * (32.0/9.0*sr3*sr3*sr3 - 16.0/3.0*sr3)
}
