package mask

import (
	"testing"

	"github.com/barcodelab/qrdecode/internal/bitmatrix"
)

func TestApply_IsInvolution(t *testing.T) {
	for idx := 0; idx < 8; idx++ {
		m := bitmatrix.NewSquare(21)
		m.Set(0, 0)
		m.Set(5, 5)
		m.Set(20, 3)
		fn := bitmatrix.NewSquare(21)
		orig := m.Clone()

		Apply(m, fn, idx)
		Apply(m, fn, idx)

		for y := 0; y < 21; y++ {
			for x := 0; x < 21; x++ {
				if m.Get(x, y) != orig.Get(x, y) {
					t.Fatalf("mask %d: applying twice is not identity at (%d,%d)", idx, x, y)
				}
			}
		}
	}
}

func TestApply_SkipsFunctionModules(t *testing.T) {
	m := bitmatrix.NewSquare(21)
	fn := bitmatrix.NewSquare(21)
	fn.Set(0, 0) // mark (0,0) as function
	Apply(m, fn, 0)
	if m.Get(0, 0) {
		t.Error("function module should never be flipped by the data mask")
	}
}

func TestApplyMicro_IsInvolution(t *testing.T) {
	for idx := 0; idx < 4; idx++ {
		m := bitmatrix.NewSquare(11)
		m.Set(0, 0)
		m.Set(5, 5)
		m.Set(10, 2)
		fn := bitmatrix.NewSquare(11)
		orig := m.Clone()

		ApplyMicro(m, fn, idx)
		ApplyMicro(m, fn, idx)

		for y := 0; y < 11; y++ {
			for x := 0; x < 11; x++ {
				if m.Get(x, y) != orig.Get(x, y) {
					t.Fatalf("micro mask %d: applying twice is not identity at (%d,%d)", idx, x, y)
				}
			}
		}
	}
}

func TestMicroPredicate_KnownValues(t *testing.T) {
	tests := []struct {
		idx  int
		i, j int
		want bool
	}{
		{0, 0, 0, true},
		{0, 1, 0, false},
		{1, 0, 0, true},
		{2, 0, 0, true},
		{3, 0, 0, true},
	}
	for _, tt := range tests {
		if got := MicroPredicate(tt.idx, tt.i, tt.j); got != tt.want {
			t.Errorf("MicroPredicate(%d,%d,%d) = %v, want %v", tt.idx, tt.i, tt.j, got, tt.want)
		}
	}
}

func TestPredicate_KnownValues(t *testing.T) {
	tests := []struct {
		idx  int
		i, j int
		want bool
	}{
		{0, 0, 0, true},
		{0, 0, 1, false},
		{1, 0, 0, true},
		{1, 1, 0, false},
		{2, 0, 3, true},
		{2, 0, 2, false},
	}
	for _, tt := range tests {
		if got := Predicate(tt.idx, tt.i, tt.j); got != tt.want {
			t.Errorf("Predicate(%d,%d,%d) = %v, want %v", tt.idx, tt.i, tt.j, got, tt.want)
		}
	}
}
