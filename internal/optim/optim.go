// Package optim tunes simulation parameters by scanning candidate grids.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/mdsim/internal/mc"
)

var (
	ErrGrid   = errors.New("optim: candidate grid must not be empty")
	ErrSweeps = errors.New("optim: sweeps must be positive")
	ErrTarget = errors.New("optim: target must be in (0, 1)")
)

// Score evaluates one candidate; lower is better.
type Score func(v float64) (float64, error)

// GridSearch returns the grid value with the lowest score. The context is
// checked before each evaluation.
func GridSearch(ctx context.Context, grid []float64, score Score) (best, bestScore float64, err error) {
	if len(grid) == 0 {
		return 0, 0, ErrGrid
	}
	bestScore = math.Inf(1)
	for _, v := range grid {
		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		default:
		}
		s, err := score(v)
		if err != nil {
			return 0, 0, fmt.Errorf("optim: candidate %g: %w", v, err)
		}
		if s < bestScore {
			best, bestScore = v, s
		}
	}
	return best, bestScore, nil
}

// TuneDrMax scans maximum displacement candidates with short hard-sphere
// runs from the same start configuration and returns the one whose
// acceptance ratio lands closest to target, together with that ratio.
// Every candidate starts from a fresh generator seeded with seed, so the
// scan is deterministic.
func TuneDrMax(ctx context.Context, box float64, r []float64, seed int64, grid []float64, sweeps int, target float64) (drMax, ratio float64, err error) {
	if sweeps < 1 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrSweeps, sweeps)
	}
	if target <= 0 || target >= 1 {
		return 0, 0, fmt.Errorf("%w: got %g", ErrTarget, target)
	}

	ratios := make(map[float64]float64, len(grid))
	best, _, err := GridSearch(ctx, grid, func(v float64) (float64, error) {
		sampler, err := mc.NewSampler(box, r, v, rand.New(rand.NewSource(seed)))
		if err != nil {
			return 0, err
		}
		sum := 0.0
		for s := 0; s < sweeps; s++ {
			sum += sampler.Sweep()
		}
		mean := sum / float64(sweeps)
		ratios[v] = mean
		return math.Abs(mean - target), nil
	})
	if err != nil {
		return 0, 0, err
	}
	return best, ratios[best], nil
}
