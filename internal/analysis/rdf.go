package analysis

import (
	"fmt"
	"math"
)

// RDF builds the radial distribution function g(r) from position frames.
// Every frame holds 3N coordinates wrapped into a cubic box of edge box;
// pair distances are minimum-imaged, so rMax may not exceed half the box.
// It returns the bin centers and the ideal-gas-normalized histogram.
func RDF(frames [][]float64, box float64, bins int, rMax float64) (r, g []float64, err error) {
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("analysis: no frames given")
	}
	if bins < 1 {
		return nil, nil, fmt.Errorf("analysis: bins must be positive, got %d", bins)
	}
	if rMax <= 0 || rMax > box/2 {
		return nil, nil, fmt.Errorf("analysis: rMax %g outside (0, box/2=%g]", rMax, box/2)
	}
	n := len(frames[0]) / 3
	if n < 2 {
		return nil, nil, fmt.Errorf("analysis: need at least 2 particles, got %d", n)
	}
	for i, f := range frames {
		if len(f) != 3*n {
			return nil, nil, fmt.Errorf("analysis: frame %d has %d coordinates, want %d", i, len(f), 3*n)
		}
	}

	dr := rMax / float64(bins)
	hist := make([]float64, bins)
	for _, f := range frames {
		for i := 0; i < n-1; i++ {
			for j := i + 1; j < n; j++ {
				dx := f[3*i] - f[3*j]
				dy := f[3*i+1] - f[3*j+1]
				dz := f[3*i+2] - f[3*j+2]
				dx -= box * math.Round(dx/box)
				dy -= box * math.Round(dy/box)
				dz -= box * math.Round(dz/box)
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				if d < rMax {
					hist[int(d/dr)]++
				}
			}
		}
	}

	vol := box * box * box
	pairs := float64(n*(n-1)) / 2
	norm := float64(len(frames)) * pairs / vol

	r = make([]float64, bins)
	g = make([]float64, bins)
	for b := 0; b < bins; b++ {
		lo := float64(b) * dr
		hi := lo + dr
		shell := 4 * math.Pi / 3 * (hi*hi*hi - lo*lo*lo)
		r[b] = lo + dr/2
		g[b] = hist[b] / (norm * shell)
	}
	return r, g, nil
}
