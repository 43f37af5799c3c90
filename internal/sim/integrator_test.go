package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/mdsim/internal/physics"
	"github.com/san-kum/mdsim/internal/system"
)

// liquidSystem builds an equilibrable FCC start at density 0.75. With 108
// particles the box edge is about 5.24, so cutoffs up to 1.74 keep the
// cell grid at three cells per axis.
func liquidSystem(t *testing.T, n int, temp float64, seed int64) *system.System {
	t.Helper()
	sys, err := system.Lattice(n, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	sys.Thermalize(temp, rand.New(rand.NewSource(seed)))
	return sys
}

func testField(t *testing.T, cutoffs []float64, box float64) *physics.Field {
	t.Helper()
	f, err := physics.NewField(cutoffs, 0.1, box, 1)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNewIntegratorValidation(t *testing.T) {
	sys := liquidSystem(t, 108, 1.0, 1)
	field := testField(t, []float64{1.3, 1.5, 1.7}, sys.Box)

	tests := []struct {
		name    string
		strides []int
		dt      float64
		want    error
	}{
		{"valid", []int{1, 4, 2}, 0.002, nil},
		{"zero dt", []int{1, 4, 2}, 0, ErrStep},
		{"negative dt", []int{1, 4, 2}, -0.002, ErrStep},
		{"too few strides", []int{1, 4}, 0.002, ErrStrides},
		{"too many strides", []int{1, 4, 2, 2}, 0.002, ErrStrides},
		{"base stride not one", []int{2, 4, 2}, 0.002, ErrBaseStride},
		{"zero stride", []int{1, 0, 2}, 0.002, ErrStride},
		{"negative stride", []int{1, -4, 2}, 0.002, ErrStride},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIntegrator(sys, field, tt.strides, tt.dt)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// With a single shell the integrator must reproduce plain velocity Verlet
// operation for operation.
func TestSingleShellIsVelocityVerlet(t *testing.T) {
	const dt = 0.002
	sysA := liquidSystem(t, 108, 1.0, 2)
	sysB := sysA.Clone()

	mts, err := NewIntegrator(sysA, testField(t, []float64{1.7}, sysA.Box), []int{1}, dt)
	if err != nil {
		t.Fatal(err)
	}

	field := testField(t, []float64{1.7}, sysB.Box)
	f := make([]float64, len(sysB.R))
	field.Evaluate(sysB.R, 0, f)

	for step := 0; step < 25; step++ {
		mts.Step()

		h := 0.5 * dt
		for i := range sysB.V {
			sysB.V[i] += h * f[i]
		}
		for i := range sysB.R {
			sysB.R[i] += sysB.V[i] * dt
		}
		sysB.Wrap()
		field.Evaluate(sysB.R, 0, f)
		for i := range sysB.V {
			sysB.V[i] += h * f[i]
		}
	}

	for i := range sysA.R {
		if sysA.R[i] != sysB.R[i] {
			t.Fatalf("position %d diverged: %v vs %v", i, sysA.R[i], sysB.R[i])
		}
		if sysA.V[i] != sysB.V[i] {
			t.Fatalf("velocity %d diverged: %v vs %v", i, sysA.V[i], sysB.V[i])
		}
	}
}

// Splitting the interaction into two shells advanced with unit strides
// applies the same total force as a single shell with the same outer
// cutoff, so the trajectories agree up to rounding.
func TestUnitStridesMatchVerlet(t *testing.T) {
	const dt = 0.002
	sysA := liquidSystem(t, 108, 1.0, 3)
	sysB := sysA.Clone()

	split, err := NewIntegrator(sysA, testField(t, []float64{1.4, 1.7}, sysA.Box), []int{1, 1}, dt)
	if err != nil {
		t.Fatal(err)
	}
	whole, err := NewIntegrator(sysB, testField(t, []float64{1.7}, sysB.Box), []int{1}, dt)
	if err != nil {
		t.Fatal(err)
	}

	for step := 0; step < 20; step++ {
		split.Step()
		whole.Step()
	}

	for i := range sysA.R {
		if d := math.Abs(sysA.R[i] - sysB.R[i]); d > 1e-9 {
			t.Fatalf("position %d diverged by %g", i, d)
		}
	}
}

func TestEnergyConservation(t *testing.T) {
	sys := liquidSystem(t, 108, 1.0, 4)
	field := testField(t, []float64{1.3, 1.5, 1.7}, sys.Box)
	mts, err := NewIntegrator(sys, field, []int{1, 4, 2}, 0.002)
	if err != nil {
		t.Fatal(err)
	}

	// settle transients from the lattice start before taking the reference
	for i := 0; i < 50; i++ {
		mts.Step()
	}
	e0, _, _ := mts.Measure()

	worst := 0.0
	for i := 0; i < 400; i++ {
		mts.Step()
		e, _, _ := mts.Measure()
		if d := math.Abs(e-e0) / math.Abs(e0); d > worst {
			worst = d
		}
	}
	if worst > 0.01 {
		t.Errorf("relative energy drift %g exceeds 1%%", worst)
	}
}

func TestMomentumConserved(t *testing.T) {
	sys := liquidSystem(t, 108, 1.0, 5)
	field := testField(t, []float64{1.3, 1.5, 1.7}, sys.Box)
	mts, err := NewIntegrator(sys, field, []int{1, 4, 2}, 0.002)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		mts.Step()
	}
	px, py, pz := sys.Momentum()
	for _, p := range []float64{px, py, pz} {
		if math.Abs(p) > 1e-9 {
			t.Errorf("net momentum %g after 100 steps", p)
		}
	}
}

// Negating the velocities must retrace the trajectory back to the start.
func TestReversibility(t *testing.T) {
	sys := liquidSystem(t, 108, 1.0, 6)
	field := testField(t, []float64{1.3, 1.5, 1.7}, sys.Box)
	mts, err := NewIntegrator(sys, field, []int{1, 4, 2}, 0.002)
	if err != nil {
		t.Fatal(err)
	}

	r0 := append([]float64(nil), sys.R...)
	v0 := append([]float64(nil), sys.V...)

	for i := 0; i < 40; i++ {
		mts.Step()
	}
	for i := range sys.V {
		sys.V[i] = -sys.V[i]
	}
	for i := 0; i < 40; i++ {
		mts.Step()
	}

	for i := range sys.R {
		d := sys.R[i] - r0[i]
		d -= sys.Box * math.Round(d/sys.Box)
		if math.Abs(d) > 1e-8 {
			t.Fatalf("position %d off by %g after retrace", i, d)
		}
		if math.Abs(sys.V[i]+v0[i]) > 1e-8 {
			t.Fatalf("velocity %d off by %g after retrace", i, sys.V[i]+v0[i])
		}
	}
}

func TestMeasureAgreesWithFreshEvaluation(t *testing.T) {
	sys := liquidSystem(t, 108, 1.0, 7)
	field := testField(t, []float64{1.3, 1.5, 1.7}, sys.Box)
	mts, err := NewIntegrator(sys, field, []int{1, 4, 2}, 0.002)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		mts.Step()
	}

	f := make([]float64, len(sys.R))
	var pot, vir float64
	for k := 0; k < field.Shells(); k++ {
		p, w := field.Evaluate(sys.R, k, f)
		pot += p
		vir += w
	}
	wantE := (sys.Kinetic() + pot) / float64(sys.N)
	vol := sys.Box * sys.Box * sys.Box
	wantP := sys.Density()*sys.Temperature() + vir/vol

	e, temp, p := mts.Measure()
	if math.Abs(e-wantE) > 1e-12 {
		t.Errorf("energy per particle %v, want %v", e, wantE)
	}
	if math.Abs(p-wantP) > 1e-12 {
		t.Errorf("pressure %v, want %v", p, wantP)
	}
	if math.Abs(temp-sys.Temperature()) > 1e-15 {
		t.Errorf("temperature %v, want %v", temp, sys.Temperature())
	}
}
