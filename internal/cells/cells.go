// Package cells provides the cell-linked-list spatial index used to
// restrict pairwise searches to nearby particles.
//
// The box is divided into Side^3 cubic cells. Build assigns every particle
// to a cell in O(N) using an arena of int32 indices: head holds the first
// particle of each cell and next chains the rest, with -1 marking the end.
// A full traversal visits, for every cell, the pairs inside it and the
// pairs against the 13 neighbor cells in Offsets; because exactly one of
// each opposite offset pair appears in the table, every unordered cell
// pair is seen exactly once.
package cells

import (
	"errors"
	"fmt"
)

// ErrGrid is returned when the box holds fewer than 3 cells per axis, in
// which case a cell would neighbor itself under wraparound and pairs would
// be double counted.
var ErrGrid = errors.New("cells: fewer than 3 cells per axis")

// Offsets is the canonical half of the 3x3x3 neighborhood, excluding the
// self cell. For every offset d the opposite -d is absent: an offset is
// included iff dz > 0, or dz == 0 and dy > 0, or dz == dy == 0 and dx > 0.
var Offsets = [13][3]int{
	{1, 0, 0},
	{1, 1, 0},
	{-1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{-1, 0, 1},
	{1, 0, 1},
	{-1, -1, 1},
	{0, -1, 1},
	{1, -1, 1},
	{-1, 1, 1},
	{0, 1, 1},
	{1, 1, 1},
}

// List is a cell list over a cubic periodic box centered on the origin.
// It holds no particle state of its own and is meant to be rebuilt from
// scratch before every search that needs it.
type List struct {
	Side int // cells per axis

	box  float64
	head []int32
	next []int32
}

// New sizes a grid for a box of edge box so that every cell edge is at
// least minEdge. The side count is floor(box/minEdge); fewer than 3 cells
// per axis is rejected with ErrGrid.
func New(box, minEdge float64) (*List, error) {
	side := int(box / minEdge)
	if side < 3 {
		return nil, fmt.Errorf("%w: box %.4g with minimum cell edge %.4g gives side %d", ErrGrid, box, minEdge, side)
	}
	return &List{
		Side: side,
		box:  box,
		head: make([]int32, side*side*side),
	}, nil
}

// Edge returns the edge length of one cell.
func (l *List) Edge() float64 {
	return l.box / float64(l.Side)
}

// Build assigns each particle to its cell. Positions are a flat length-3N
// array and must already lie within one box length of the origin. Building
// twice from the same positions yields identical contents.
func (l *List) Build(r []float64) {
	n := len(r) / 3
	if cap(l.next) < n {
		l.next = make([]int32, n)
	} else {
		l.next = l.next[:n]
	}
	for c := range l.head {
		l.head[c] = -1
	}
	s := float64(l.Side)
	inv := 1.0 / l.box
	for i := 0; i < n; i++ {
		cx := l.wrap(int((r[3*i]*inv + 0.5) * s))
		cy := l.wrap(int((r[3*i+1]*inv + 0.5) * s))
		cz := l.wrap(int((r[3*i+2]*inv + 0.5) * s))
		c := (cz*l.Side+cy)*l.Side + cx
		l.next[i] = l.head[c]
		l.head[c] = int32(i)
	}
}

// Head returns the first particle index in cell (cx, cy, cz), or -1 when
// the cell is empty. Coordinates may be one step outside [0, Side) and are
// wrapped, so neighbor offsets can be applied directly.
func (l *List) Head(cx, cy, cz int) int32 {
	cx = l.wrap(cx)
	cy = l.wrap(cy)
	cz = l.wrap(cz)
	return l.head[(cz*l.Side+cy)*l.Side+cx]
}

// Next returns the particle following i in the same cell, or -1.
func (l *List) Next(i int32) int32 {
	return l.next[i]
}

func (l *List) wrap(c int) int {
	if c >= l.Side {
		return c - l.Side
	}
	if c < 0 {
		return c + l.Side
	}
	return c
}
