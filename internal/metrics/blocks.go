// Package metrics accumulates per-step observables into block and run
// statistics, following the usual block-averaging protocol: values are
// added once per step, averaged at block ends, and the run summary reports
// the mean and standard error across block means.
package metrics

import (
	"fmt"
	"math"
)

// Blocks collects named scalar series. The caller drives the protocol:
// BlockBegin, repeated Add, BlockEnd per block; Summary at run end.
type Blocks struct {
	names []string

	sum   []float64
	count int

	runSum   []float64
	runSumSq []float64
	blocks   int
}

// NewBlocks returns an accumulator for the given variables. Add must be
// called with exactly this many values, in this order.
func NewBlocks(names ...string) *Blocks {
	return &Blocks{
		names:    names,
		sum:      make([]float64, len(names)),
		runSum:   make([]float64, len(names)),
		runSumSq: make([]float64, len(names)),
	}
}

// Names returns the variable names in reporting order.
func (b *Blocks) Names() []string {
	return append([]string(nil), b.names...)
}

// BlockBegin resets the in-progress block.
func (b *Blocks) BlockBegin() {
	for i := range b.sum {
		b.sum[i] = 0
	}
	b.count = 0
}

// Add records one step's values.
func (b *Blocks) Add(vals ...float64) {
	if len(vals) != len(b.names) {
		panic(fmt.Sprintf("metrics: Add got %d values for %d variables", len(vals), len(b.names)))
	}
	for i, v := range vals {
		b.sum[i] += v
	}
	b.count++
}

// BlockEnd closes the block and returns its per-variable means. Blocks
// with no samples return zeros and do not count toward the run.
func (b *Blocks) BlockEnd() []float64 {
	means := make([]float64, len(b.names))
	if b.count == 0 {
		return means
	}
	for i := range means {
		means[i] = b.sum[i] / float64(b.count)
		b.runSum[i] += means[i]
		b.runSumSq[i] += means[i] * means[i]
	}
	b.blocks++
	return means
}

// Summary holds run statistics over completed blocks.
type Summary struct {
	Names  []string
	Mean   []float64
	StdErr []float64
	Blocks int
}

// Summary returns the run mean and the standard error of the mean across
// block averages (zero when fewer than two blocks completed).
func (b *Blocks) Summary() Summary {
	s := Summary{
		Names:  b.Names(),
		Mean:   make([]float64, len(b.names)),
		StdErr: make([]float64, len(b.names)),
		Blocks: b.blocks,
	}
	if b.blocks == 0 {
		return s
	}
	nb := float64(b.blocks)
	for i := range b.names {
		mean := b.runSum[i] / nb
		s.Mean[i] = mean
		if b.blocks > 1 {
			variance := (b.runSumSq[i] - nb*mean*mean) / (nb - 1)
			if variance < 0 {
				variance = 0
			}
			s.StdErr[i] = math.Sqrt(variance / nb)
		}
	}
	return s
}
