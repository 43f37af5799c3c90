// Package physics evaluates the shell-decomposed Lennard-Jones force
// field.
//
// The pair interaction is split by distance into K concentric shells with
// strictly increasing cutoffs. Shell contributions heal into each other
// over a band of width lambda: a cubic switching kernel takes each shell's
// potential and force smoothly to zero at its outer cutoff while the next
// shell rises with the complementary weight, so the sum over shells equals
// the smoothly truncated full interaction and stays differentiable across
// every shell boundary.
//
// [Field.Evaluate] computes one shell's potential, virial, and per-particle
// forces. Pairs are found through a cell list sized by the outermost
// cutoff, through a plain all-pairs scan for small systems, or through a
// chunked worker pool when the field is built with more than one worker.
//
// The virial returned by Evaluate is already divided by 3, so pressure
// follows directly as rho*T + virial/volume. Closed-form corrections for
// the truncated tail are available as [PotentialTail] and [PressureTail].
package physics
