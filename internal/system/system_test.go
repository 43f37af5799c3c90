package system

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestFromArrays(t *testing.T) {
	r := make([]float64, 9)
	v := make([]float64, 9)
	s, err := FromArrays(5.0, r, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.N != 3 {
		t.Errorf("N = %d, want 3", s.N)
	}

	cases := []struct {
		name string
		r, v []float64
	}{
		{"ragged positions", make([]float64, 7), nil},
		{"empty", nil, nil},
		{"mismatched velocities", make([]float64, 9), make([]float64, 6)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromArrays(5.0, tc.r, tc.v); !errors.Is(err, ErrSize) {
				t.Errorf("error = %v, want ErrSize", err)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	s := New(2, 10.0)
	s.R[0] = 7.0
	s.R[1] = -4.9
	s.R[2] = 0.3
	s.R[3] = -12.0
	s.Wrap()
	for i, x := range s.R {
		if x < -5.0 || x > 5.0 {
			t.Errorf("R[%d] = %v, outside box", i, x)
		}
	}
	if math.Abs(s.R[0]+3.0) > 1e-12 {
		t.Errorf("R[0] = %v, want -3", s.R[0])
	}
	if math.Abs(s.R[3]+2.0) > 1e-12 {
		t.Errorf("R[3] = %v, want -2", s.R[3])
	}
}

func TestLattice(t *testing.T) {
	for _, n := range []int{32, 108, 256} {
		s, err := Lattice(n, 0.75)
		if err != nil {
			t.Fatalf("Lattice(%d): %v", n, err)
		}
		if s.N != n {
			t.Errorf("N = %d, want %d", s.N, n)
		}
		if d := s.Density(); math.Abs(d-0.75) > 1e-12 {
			t.Errorf("density = %v, want 0.75", d)
		}
		for i, x := range s.R {
			if x < -s.Box/2 || x >= s.Box/2 {
				t.Fatalf("n=%d: R[%d] = %v outside box %v", n, i, x, s.Box)
			}
		}
	}

	if _, err := Lattice(100, 0.75); !errors.Is(err, ErrLattice) {
		t.Errorf("Lattice(100) error = %v, want ErrLattice", err)
	}
}

func TestLatticeSpacing(t *testing.T) {
	s, err := Lattice(32, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	// fcc nearest neighbor distance is a/sqrt(2), a = box/c.
	a := s.Box / 2
	want := a / math.Sqrt2

	min := math.Inf(1)
	for i := 0; i < s.N; i++ {
		for j := i + 1; j < s.N; j++ {
			d2 := 0.0
			for ax := 0; ax < 3; ax++ {
				d := s.R[3*i+ax] - s.R[3*j+ax]
				d -= s.Box * math.Round(d/s.Box)
				d2 += d * d
			}
			if d2 < min {
				min = d2
			}
		}
	}
	if got := math.Sqrt(min); math.Abs(got-want) > 1e-9 {
		t.Errorf("nearest neighbor = %v, want %v", got, want)
	}
}

func TestThermalize(t *testing.T) {
	s, err := Lattice(108, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	s.Thermalize(1.4, rand.New(rand.NewSource(7)))

	px, py, pz := s.Momentum()
	for _, p := range []float64{px, py, pz} {
		if math.Abs(p) > 1e-10 {
			t.Errorf("momentum component = %v, want 0", p)
		}
	}
	if got := s.Temperature(); math.Abs(got-1.4) > 1e-12 {
		t.Errorf("temperature = %v, want 1.4", got)
	}
}

func TestKinetic(t *testing.T) {
	s := New(2, 5)
	s.V = []float64{1, 0, 0, 0, 2, 0}
	if got := s.Kinetic(); math.Abs(got-2.5) > 1e-15 {
		t.Errorf("kinetic = %v, want 2.5", got)
	}
}
