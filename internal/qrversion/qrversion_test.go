package qrversion

import "testing"

func TestModelTwoVersion_BlockLayoutSumsToTotal(t *testing.T) {
	for n := 1; n <= 40; n++ {
		v, err := ModelTwoVersion(n)
		if err != nil {
			t.Fatalf("version %d: %v", n, err)
		}
		for lvl := 0; lvl < 4; lvl++ {
			b := v.ecBlocks[lvl]
			sum := b.NumBlocks1*(b.DataPerBlock1+b.ECPerBlock) + b.NumBlocks2*(b.DataPerBlock1+1+b.ECPerBlock)
			if sum != v.TotalCodewords {
				t.Errorf("version %d level %d: sum=%d want %d", n, lvl, sum, v.TotalCodewords)
			}
		}
	}
}

func TestModelTwoVersion_KnownDimensions(t *testing.T) {
	tests := []struct {
		n   int
		dim int
	}{
		{1, 21}, {2, 25}, {6, 41}, {7, 45}, {40, 177},
	}
	for _, tt := range tests {
		v, err := ModelTwoVersion(tt.n)
		if err != nil {
			t.Fatalf("version %d: %v", tt.n, err)
		}
		if v.Dimension != tt.dim {
			t.Errorf("version %d dimension = %d, want %d", tt.n, v.Dimension, tt.dim)
		}
	}
}

func TestModelTwoVersion_KnownCodewordCounts(t *testing.T) {
	// Version 1-L: 19 data codewords + 7 EC, 1 block -- a textbook value.
	v, err := ModelTwoVersion(1)
	if err != nil {
		t.Fatal(err)
	}
	if v.TotalCodewords != 26 {
		t.Errorf("version 1 TotalCodewords = %d, want 26", v.TotalCodewords)
	}
	if got := v.DataCodewords(ECLevelL); got != 19 {
		t.Errorf("version 1-L DataCodewords = %d, want 19", got)
	}
}

func TestDimensionToVersionModel2(t *testing.T) {
	tests := []struct {
		dim     int
		want    int
		wantOK  bool
	}{
		{21, 1, true}, {25, 2, true}, {41, 6, true}, {22, 0, false}, {45, 0, false},
	}
	for _, tt := range tests {
		got, ok := DimensionToVersionModel2(tt.dim)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("DimensionToVersionModel2(%d) = (%d,%v), want (%d,%v)", tt.dim, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAlignmentPatternCenters(t *testing.T) {
	v, _ := ModelTwoVersion(1)
	if got := v.AlignmentPatternCenters(); len(got) != 0 {
		t.Errorf("version 1 alignment centers = %v, want none", got)
	}
	v2, _ := ModelTwoVersion(2)
	want := []int{6, 18}
	got := v2.AlignmentPatternCenters()
	if len(got) != len(want) {
		t.Fatalf("version 2 centers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("version 2 centers[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestECLevelFormatBitsRoundTrip(t *testing.T) {
	for _, lvl := range []ECLevel{ECLevelL, ECLevelM, ECLevelQ, ECLevelH} {
		bits := lvl.FormatBits()
		got, ok := ECLevelFromFormatBits(bits)
		if !ok || got != lvl {
			t.Errorf("round trip for %v failed: bits=%d got=%v ok=%v", lvl, bits, got, ok)
		}
	}
}

func TestFunctionModuleMask_CoversFinderAndTiming(t *testing.T) {
	v, _ := ModelTwoVersion(1)
	m := v.FunctionModuleMask()
	if !m.Get(0, 0) {
		t.Error("top-left finder corner should be a function module")
	}
	if !m.Get(6, 10) {
		t.Error("vertical timing pattern column should be a function module")
	}
	if m.Get(10, 10) {
		t.Error("center of a version-1 symbol should not be a function module")
	}
}
