package thermostat

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/mdsim/internal/system"
)

func hotSystem(t *testing.T, temp float64) *system.System {
	t.Helper()
	s, err := system.Lattice(32, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	s.Thermalize(temp, rand.New(rand.NewSource(3)))
	return s
}

func TestRescale(t *testing.T) {
	s := hotSystem(t, 2.0)
	Rescale{T: 1.0}.Apply(s)
	if got := s.Temperature(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("temperature = %v, want 1.0", got)
	}
}

func TestBerendsenRelaxes(t *testing.T) {
	s := hotSystem(t, 2.0)
	b := Berendsen{T: 1.0, Tau: 0.1, Dt: 0.01}

	prev := s.Temperature()
	for i := 0; i < 50; i++ {
		b.Apply(s)
		cur := s.Temperature()
		if cur >= prev {
			t.Fatalf("step %d: temperature %v did not fall from %v", i, cur, prev)
		}
		prev = cur
	}
	if math.Abs(prev-1.0) > 0.02 {
		t.Errorf("temperature after relaxation = %v, want near 1.0", prev)
	}
}

func TestBerendsenFixedPoint(t *testing.T) {
	s := hotSystem(t, 1.0)
	Berendsen{T: 1.0, Tau: 0.1, Dt: 0.01}.Apply(s)
	if got := s.Temperature(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("temperature moved off the target: %v", got)
	}
}
