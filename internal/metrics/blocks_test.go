package metrics

import (
	"math"
	"testing"
)

func TestBlocks(t *testing.T) {
	b := NewBlocks("E/N", "T")

	b.BlockBegin()
	b.Add(1, 10)
	b.Add(3, 20)
	means := b.BlockEnd()
	if means[0] != 2 || means[1] != 15 {
		t.Fatalf("block 1 means = %v, want [2 15]", means)
	}

	b.BlockBegin()
	b.Add(5, 30)
	b.Add(7, 50)
	means = b.BlockEnd()
	if means[0] != 6 || means[1] != 40 {
		t.Fatalf("block 2 means = %v, want [6 40]", means)
	}

	s := b.Summary()
	if s.Blocks != 2 {
		t.Errorf("blocks = %d, want 2", s.Blocks)
	}
	if s.Mean[0] != 4 || s.Mean[1] != 27.5 {
		t.Errorf("means = %v, want [4 27.5]", s.Mean)
	}
	// block means (2,6) and (15,40): sample variances 8 and 312.5
	if math.Abs(s.StdErr[0]-2) > 1e-12 {
		t.Errorf("stderr E/N = %v, want 2", s.StdErr[0])
	}
	if math.Abs(s.StdErr[1]-12.5) > 1e-12 {
		t.Errorf("stderr T = %v, want 12.5", s.StdErr[1])
	}
}

func TestBlocksSingleBlock(t *testing.T) {
	b := NewBlocks("p")
	b.BlockBegin()
	b.Add(2)
	b.BlockEnd()

	s := b.Summary()
	if s.Mean[0] != 2 {
		t.Errorf("mean = %v, want 2", s.Mean[0])
	}
	if s.StdErr[0] != 0 {
		t.Errorf("stderr with one block = %v, want 0", s.StdErr[0])
	}
}

func TestBlocksEmptyBlock(t *testing.T) {
	b := NewBlocks("p")
	b.BlockBegin()
	b.BlockEnd()
	if s := b.Summary(); s.Blocks != 0 {
		t.Errorf("empty block counted: %d", s.Blocks)
	}
}

func TestAddArityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong value count")
		}
	}()
	b := NewBlocks("a", "b")
	b.BlockBegin()
	b.Add(1)
}

func TestDrift(t *testing.T) {
	var d Drift
	d.Observe(10)
	if d.Max() != 0 {
		t.Errorf("max after reference = %v, want 0", d.Max())
	}
	d.Observe(10.1)
	if math.Abs(d.Max()-0.01) > 1e-12 {
		t.Errorf("max = %v, want 0.01", d.Max())
	}
	d.Observe(9.95)
	if math.Abs(d.Max()-0.01) > 1e-12 {
		t.Errorf("max must keep the worst value, got %v", d.Max())
	}
	d.Observe(10.3)
	if math.Abs(d.Max()-0.03) > 1e-12 {
		t.Errorf("max = %v, want 0.03", d.Max())
	}
}
