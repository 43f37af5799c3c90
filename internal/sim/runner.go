package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/mdsim/internal/metrics"
	"github.com/san-kum/mdsim/internal/system"
	"github.com/san-kum/mdsim/internal/thermostat"
)

// Sink receives the step series and per-block configuration snapshots.
// A nil Sink discards both.
type Sink interface {
	AppendSteps(rows [][]float64) error
	SaveConfig(block int, sys *system.System) error
}

// Runner drives an Integrator through warm-up and averaging blocks.
// Equil warm-up blocks run first: the thermostat is applied after every
// outer step and nothing is recorded. Production blocks then feed the
// block averages, the drift tracker and the sink. TailE and TailP are
// added to each energy and pressure sample as constant long range
// corrections.
type Runner struct {
	Mts     *Integrator
	Blocks  int
	Steps   int
	Equil   int
	Thermo  thermostat.Thermostat
	TailE   float64
	TailP   float64
	Sink    Sink
	OnBlock func(block int, means []float64)
}

type Result struct {
	Summary metrics.Summary
	Drift   float64
	Steps   int
	Elapsed time.Duration
}

// Run executes the configured blocks. The context is checked between
// outer steps; cancellation abandons the run.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if r.Blocks < 1 || r.Steps < 1 {
		return nil, fmt.Errorf("%w: blocks=%d steps=%d", ErrCounts, r.Blocks, r.Steps)
	}

	start := time.Now()
	sys := r.Mts.System()

	for b := 0; b < r.Equil; b++ {
		for s := 0; s < r.Steps; s++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			r.Mts.Step()
			if r.Thermo != nil {
				r.Thermo.Apply(sys)
			}
		}
	}

	blocks := metrics.NewBlocks("E/N", "T", "P")
	var drift metrics.Drift
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
			r.Mts.Step()
			step++

			e, t, p := r.Mts.Measure()
			e += r.TailE
			p += r.TailP
			blocks.Add(e, t, p)
			drift.Observe(e)
			rows = append(rows, []float64{float64(step), e, t, p})
		}
		means := blocks.BlockEnd()

		if r.Sink != nil {
			if err := r.Sink.AppendSteps(rows); err != nil {
				return nil, err
			}
			if err := r.Sink.SaveConfig(b+1, sys); err != nil {
				return nil, err
			}
		}
		if r.OnBlock != nil {
			r.OnBlock(b+1, means)
		}
	}

	return &Result{
		Summary: blocks.Summary(),
		Drift:   drift.Max(),
		Steps:   step,
		Elapsed: time.Since(start),
	}, nil
}
