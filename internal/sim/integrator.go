// Package sim advances a particle system through time. The Integrator
// implements the nested multiple time step scheme over a shell-decomposed
// force field; the Runner drives it through equilibration and averaging
// blocks.
package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/mdsim/internal/physics"
	"github.com/san-kum/mdsim/internal/system"
)

var (
	ErrStep       = errors.New("sim: dt must be positive")
	ErrStrides    = errors.New("sim: one stride per shell required")
	ErrBaseStride = errors.New("sim: innermost stride must be 1")
	ErrStride     = errors.New("sim: strides must be positive")
	ErrCounts     = errors.New("sim: blocks and steps must be positive")
)

// Integrator advances the system with one velocity half kick from shell k
// on either side of strides[k] steps of the shells below it. Shell 0 is
// velocity Verlet at the base step dt, so with a single shell the scheme
// is velocity Verlet exactly. Shell forces are cached between kicks and
// are always consistent with the current positions after a Step.
type Integrator struct {
	sys     *system.System
	field   *physics.Field
	dt      float64
	strides []int
	spans   []float64
	force   [][]float64
	pot     []float64
	vir     []float64
}

func NewIntegrator(sys *system.System, field *physics.Field, strides []int, dt float64) (*Integrator, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: dt=%g", ErrStep, dt)
	}
	if len(strides) != field.Shells() {
		return nil, fmt.Errorf("%w: %d strides for %d shells", ErrStrides, len(strides), field.Shells())
	}
	for k, n := range strides {
		if n < 1 {
			return nil, fmt.Errorf("%w: stride %d is %d", ErrStride, k+1, n)
		}
	}
	if strides[0] != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBaseStride, strides[0])
	}

	shells := field.Shells()
	m := &Integrator{
		sys:     sys,
		field:   field,
		dt:      dt,
		strides: append([]int(nil), strides...),
		spans:   make([]float64, shells),
		force:   make([][]float64, shells),
		pot:     make([]float64, shells),
		vir:     make([]float64, shells),
	}
	span := dt
	for k := 0; k < shells; k++ {
		span *= float64(strides[k])
		m.spans[k] = span
		m.force[k] = make([]float64, len(sys.R))
	}
	m.refresh()
	return m, nil
}

// refresh recomputes every shell's cached forces at the current positions.
func (m *Integrator) refresh() {
	for k := range m.force {
		m.pot[k], m.vir[k] = m.field.Evaluate(m.sys.R, k, m.force[k])
	}
}

// Step advances the system by one outermost time step, i.e. by
// dt times the product of all strides.
func (m *Integrator) Step() {
	m.advance(len(m.spans) - 1)
}

func (m *Integrator) advance(k int) {
	if k == 0 {
		m.verlet()
		return
	}
	h := 0.5 * m.spans[k]
	m.kick(k, h)
	for i := 0; i < m.strides[k]; i++ {
		m.advance(k - 1)
	}
	m.pot[k], m.vir[k] = m.field.Evaluate(m.sys.R, k, m.force[k])
	m.kick(k, h)
}

func (m *Integrator) verlet() {
	h := 0.5 * m.dt
	m.kick(0, h)
	m.drift()
	m.pot[0], m.vir[0] = m.field.Evaluate(m.sys.R, 0, m.force[0])
	m.kick(0, h)
}

// kick applies shell k's cached forces to the velocities for time h.
// Particle mass is 1, so acceleration equals force.
func (m *Integrator) kick(k int, h float64) {
	f := m.force[k]
	for i, v := range m.sys.V {
		m.sys.V[i] = v + h*f[i]
	}
}

func (m *Integrator) drift() {
	for i, v := range m.sys.V {
		m.sys.R[i] += v * m.dt
	}
	m.sys.Wrap()
}

// Measure reports energy per particle, instantaneous temperature and
// pressure from the velocities and the force values already on hand.
func (m *Integrator) Measure() (eN, t, p float64) {
	var pot, vir float64
	for k := range m.pot {
		pot += m.pot[k]
		vir += m.vir[k]
	}
	t = m.sys.Temperature()
	vol := m.sys.Box * m.sys.Box * m.sys.Box
	eN = (m.sys.Kinetic() + pot) / float64(m.sys.N)
	p = m.sys.Density()*t + vir/vol
	return eN, t, p
}

// Potential returns the total potential energy at the current positions.
func (m *Integrator) Potential() float64 {
	var pot float64
	for k := range m.pot {
		pot += m.pot[k]
	}
	return pot
}

// System returns the particle system the integrator advances.
func (m *Integrator) System() *system.System { return m.sys }

// Span returns the duration of one outermost step.
func (m *Integrator) Span() float64 { return m.spans[len(m.spans)-1] }
