package mc

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/mdsim/internal/metrics"
)

// Sink receives the step series and the per-block position snapshots.
type Sink interface {
	AppendSteps(rows [][]float64) error
	SavePositions(block int, box float64, r []float64) error
}

// Runner drives a Sampler through averaging blocks, recording the move
// ratio and pressure of every sweep.
type Runner struct {
	Sampler *Sampler
	Blocks  int
	Steps   int
	EpsBox  float64
	Sink    Sink
	OnBlock func(block int, means []float64)
}

type Result struct {
	Summary metrics.Summary
	Steps   int
	Elapsed time.Duration
}

func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.Blocks < 1 || r.Steps < 1 {
		return nil, fmt.Errorf("%w: blocks=%d steps=%d", ErrCounts, r.Blocks, r.Steps)
	}
	if r.EpsBox <= 0 {
		return nil, fmt.Errorf("%w: eps_box=%g", ErrMove, r.EpsBox)
	}

	start := time.Now()
	blocks := metrics.NewBlocks("m-ratio", "P")
	step := 0

	for b := 0; b < r.Blocks; b++ {
		blocks.BlockBegin()
		rows := make([][]float64, 0, r.Steps)
		for s := 0; s < r.Steps; s++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			ratio := r.Sampler.Sweep()
			step++

			p := r.Sampler.Pressure(r.EpsBox)
			blocks.Add(ratio, p)
			rows = append(rows, []float64{float64(step), ratio, p})
		}
		means := blocks.BlockEnd()

		if r.Sink != nil {
			if err := r.Sink.AppendSteps(rows); err != nil {
				return nil, err
			}
			if err := r.Sink.SavePositions(b+1, r.Sampler.Box(), r.Sampler.Positions()); err != nil {
				return nil, err
			}
		}
		if r.OnBlock != nil {
			r.OnBlock(b+1, means)
		}
	}

	if k := r.Sampler.Overlaps(); k > 0 {
		return nil, fmt.Errorf("%w: %d overlapping pairs at end of run", ErrOverlap, k)
	}

	return &Result{
		Summary: blocks.Summary(),
		Steps:   step,
		Elapsed: time.Since(start),
	}, nil
}
