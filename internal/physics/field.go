package physics

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/mdsim/internal/cells"
)

var (
	// ErrCutoffs is returned for an empty or non-increasing cutoff list.
	ErrCutoffs = errors.New("physics: cutoffs must increase strictly")
	// ErrHealing is returned when the healing length is non-positive or
	// reaches below zero separation for the innermost shell.
	ErrHealing = errors.New("physics: healing length must be positive and below the first cutoff")
	// ErrGap is returned when two shells sit closer than the healing
	// length, which would overlap their switching bands.
	ErrGap = errors.New("physics: shell gap narrower than the healing length")
	// ErrBox is returned when the outermost cutoff exceeds half the box,
	// breaking the minimum image convention.
	ErrBox = errors.New("physics: outermost cutoff exceeds half the box")
)

// Small systems skip the cell list; a direct scan beats grid bookkeeping
// until a few dozen particles.
const allPairsCutover = 64

// shell holds the precomputed radial bounds of one distance shell. All
// comparisons in the pair kernel run on squared distances; the band edges
// keep their plain values for the switching argument.
type shell struct {
	lo, hi float64 // annulus [lo, hi), lo = 0 for the innermost shell
	rise2  float64 // lo^2: below this the rising band applies (lo > 0)
	skip2  float64 // (lo-lambda)^2: below this the shell contributes nothing
	fall2  float64 // (hi-lambda)^2: above this the falling band applies
	hi2    float64 // hi^2: at and above this the shell contributes nothing
}

// Field evaluates potential, virial, and forces for one shell at a time
// over a periodic cubic box. A Field is immutable after construction and
// safe to share between evaluations; the embedded cell list is rebuilt at
// every call and never carries state across calls.
type Field struct {
	box     float64
	lam     float64
	shells  []shell
	grid    *cells.List
	workers int

	allPairsMax int

	// scratch for the worker pool
	bufs [][]float64
	pots []float64
	virs []float64
}

// NewField validates a shell configuration against the box and returns a
// ready force field. cutoffs are the K outer shell radii, lam the healing
// length, box the periodic edge. workers > 1 enables the chunked parallel
// traversal. All configuration errors surface here, before any evaluation.
func NewField(cutoffs []float64, lam, box float64, workers int) (*Field, error) {
	if len(cutoffs) == 0 {
		return nil, fmt.Errorf("%w: none given", ErrCutoffs)
	}
	for k := 1; k < len(cutoffs); k++ {
		if cutoffs[k] <= cutoffs[k-1] {
			return nil, fmt.Errorf("%w: r_cut[%d] = %g, r_cut[%d] = %g", ErrCutoffs, k, cutoffs[k-1], k+1, cutoffs[k])
		}
	}
	if lam <= 0 || lam >= cutoffs[0] {
		return nil, fmt.Errorf("%w: lambda %g with first cutoff %g", ErrHealing, lam, cutoffs[0])
	}
	for k := 1; k < len(cutoffs); k++ {
		if gap := cutoffs[k] - cutoffs[k-1]; gap < lam {
			return nil, fmt.Errorf("%w: gap %g between r_cut[%d] and r_cut[%d], lambda %g", ErrGap, gap, k, k+1, lam)
		}
	}
	outer := cutoffs[len(cutoffs)-1]
	if outer > box/2 {
		return nil, fmt.Errorf("%w: r_cut[%d] = %g, box %g", ErrBox, len(cutoffs), outer, box)
	}
	grid, err := cells.New(box, outer)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	fd := &Field{
		box:         box,
		lam:         lam,
		grid:        grid,
		workers:     workers,
		allPairsMax: allPairsCutover,
	}
	for k, hi := range cutoffs {
		sh := shell{hi: hi, hi2: hi * hi}
		sh.fall2 = (hi - lam) * (hi - lam)
		if k > 0 {
			sh.lo = cutoffs[k-1]
			sh.rise2 = sh.lo * sh.lo
			sh.skip2 = (sh.lo - lam) * (sh.lo - lam)
		}
		fd.shells = append(fd.shells, sh)
	}
	return fd, nil
}

// Shells returns the number of distance shells.
func (fd *Field) Shells() int { return len(fd.shells) }

// Outer returns the outermost cutoff radius.
func (fd *Field) Outer() float64 { return fd.shells[len(fd.shells)-1].hi }

// smooth is the switching kernel on x in [0, 1]: value 1 at 0, value 0 at
// 1, zero slope at both ends.
func smooth(x float64) (s, ds float64) {
	return 1 + x*x*(2*x-3), 6 * x * (x - 1)
}

// Evaluate fills f (length 3N, overwritten) with shell k's forces for the
// positions r and returns the shell potential and its virial contribution,
// the latter already divided by 3. k counts shells from 0 (innermost).
// Positions must be wrapped into the box; the shell geometry was validated
// at construction, so Evaluate itself cannot fail.
func (fd *Field) Evaluate(r []float64, k int, f []float64) (pot, vir float64) {
	if len(f) != len(r) {
		panic("physics: force buffer length does not match positions")
	}
	for i := range f {
		f[i] = 0
	}
	sh := &fd.shells[k]
	n := len(r) / 3
	switch {
	case n <= fd.allPairsMax:
		pot, vir = fd.evalDirect(r, sh, f)
	case fd.workers > 1:
		pot, vir = fd.evalParallel(r, sh, f)
	default:
		fd.grid.Build(r)
		pot, vir = fd.scanRange(r, sh, 0, fd.gridCells(), f)
	}
	return pot, vir / 3
}

// pair accumulates one (i, j) interaction into f and returns its potential
// and f·r virial term. Outside the shell's annulus it contributes nothing.
func (fd *Field) pair(sh *shell, r []float64, i, j int, f []float64) (pot, vir float64) {
	dx := r[3*i] - r[3*j]
	dy := r[3*i+1] - r[3*j+1]
	dz := r[3*i+2] - r[3*j+2]
	dx -= fd.box * math.Round(dx/fd.box)
	dy -= fd.box * math.Round(dy/fd.box)
	dz -= fd.box * math.Round(dz/fd.box)

	r2 := dx*dx + dy*dy + dz*dz
	if r2 >= sh.hi2 || r2 < sh.skip2 {
		return 0, 0
	}

	sr2 := 1 / r2
	sr6 := sr2 * sr2 * sr2
	sr12 := sr6 * sr6
	phi := 4 * (sr12 - sr6)
	flj := 24 * (2*sr12 - sr6) // radial force times r

	var fOverR float64
	switch {
	case r2 < sh.rise2:
		// rising band: this shell takes over from the one below
		rr := math.Sqrt(r2)
		sv, dv := smooth((rr - sh.lo + fd.lam) / fd.lam)
		w := 1 - sv
		pot = w * phi
		fOverR = w*flj*sr2 + dv/fd.lam*phi/rr
	case r2 >= sh.fall2:
		// falling band: hand over to the shell above (or to zero)
		rr := math.Sqrt(r2)
		sv, dv := smooth((rr - sh.hi + fd.lam) / fd.lam)
		pot = sv * phi
		fOverR = sv*flj*sr2 - dv/fd.lam*phi/rr
	default:
		pot = phi
		fOverR = flj * sr2
	}

	f[3*i] += fOverR * dx
	f[3*i+1] += fOverR * dy
	f[3*i+2] += fOverR * dz
	f[3*j] -= fOverR * dx
	f[3*j+1] -= fOverR * dy
	f[3*j+2] -= fOverR * dz

	return pot, fOverR * r2
}

func (fd *Field) evalDirect(r []float64, sh *shell, f []float64) (pot, vir float64) {
	n := len(r) / 3
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			p, v := fd.pair(sh, r, i, j, f)
			pot += p
			vir += v
		}
	}
	return pot, vir
}

func (fd *Field) gridCells() int {
	s := fd.grid.Side
	return s * s * s
}

// scanRange walks the flat cell index range [from, to), visiting same-cell
// pairs and the 13 half-neighborhood cells of each. The grid must have
// been built for r already.
func (fd *Field) scanRange(r []float64, sh *shell, from, to int, f []float64) (pot, vir float64) {
	side := fd.grid.Side
	for c := from; c < to; c++ {
		cx := c % side
		cy := (c / side) % side
		cz := c / (side * side)

		for i := fd.grid.Head(cx, cy, cz); i >= 0; i = fd.grid.Next(i) {
			for j := fd.grid.Next(i); j >= 0; j = fd.grid.Next(j) {
				p, v := fd.pair(sh, r, int(i), int(j), f)
				pot += p
				vir += v
			}
		}
		for _, d := range cells.Offsets {
			for i := fd.grid.Head(cx, cy, cz); i >= 0; i = fd.grid.Next(i) {
				for j := fd.grid.Head(cx+d[0], cy+d[1], cz+d[2]); j >= 0; j = fd.grid.Next(j) {
					p, v := fd.pair(sh, r, int(i), int(j), f)
					pot += p
					vir += v
				}
			}
		}
	}
	return pot, vir
}

// evalParallel chunks the cell range across the worker pool. Every worker
// accumulates into a private force buffer; buffers are reduced after the
// wait, so the antisymmetric pair update is preserved exactly and the
// result differs from the serial path only by floating-point summation
// order.
func (fd *Field) evalParallel(r []float64, sh *shell, f []float64) (pot, vir float64) {
	fd.grid.Build(r)

	nc := fd.gridCells()
	workers := fd.workers
	if workers > nc {
		workers = nc
	}
	if len(fd.bufs) < workers {
		fd.bufs = make([][]float64, workers)
		fd.pots = make([]float64, workers)
		fd.virs = make([]float64, workers)
	}
	chunk := (nc + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		from := w * chunk
		if from >= nc {
			break
		}
		to := from + chunk
		if to > nc {
			to = nc
		}
		if len(fd.bufs[w]) < len(r) {
			fd.bufs[w] = make([]float64, len(r))
		}
		buf := fd.bufs[w][:len(r)]
		for i := range buf {
			buf[i] = 0
		}

		wg.Add(1)
		go func(w, from, to int) {
			defer wg.Done()
			fd.pots[w], fd.virs[w] = fd.scanRange(r, sh, from, to, buf)
		}(w, from, to)
	}
	wg.Wait()

	for w := 0; w < workers; w++ {
		if w*chunk >= nc {
			break
		}
		buf := fd.bufs[w]
		for i := range f {
			f[i] += buf[i]
		}
		pot += fd.pots[w]
		vir += fd.virs[w]
	}
	return pot, vir
}
