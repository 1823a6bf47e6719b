package bitmatrix

import "testing"

func TestBitArray_AppendBits(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		n     int
		want  []bool
	}{
		{"three bits 101", 0b101, 3, []bool{true, false, true}},
		{"zero width", 0, 0, nil},
		{"eight bits", 0xA5, 8, []bool{true, false, true, false, false, true, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBitArray()
			a.AppendBits(tt.value, tt.n)
			if a.Size() != tt.n {
				t.Fatalf("Size() = %d, want %d", a.Size(), tt.n)
			}
			for i, want := range tt.want {
				if got := a.Get(i); got != want {
					t.Errorf("bit %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestBitArray_ToBytes(t *testing.T) {
	a := NewBitArray()
	a.AppendBits(0xA5, 8)
	a.AppendBits(0x3, 2)
	b := a.ToBytes(0, 8)
	if len(b) != 1 || b[0] != 0xA5 {
		t.Fatalf("ToBytes(0,8) = %v, want [0xA5]", b)
	}
}

func TestBitArray_Reverse(t *testing.T) {
	a := NewBitArray()
	a.AppendBits(0b1100, 4)
	a.Reverse()
	want := []bool{false, false, true, true}
	for i, w := range want {
		if got := a.Get(i); got != w {
			t.Errorf("bit %d = %v, want %v", i, got, w)
		}
	}
}

func TestBitArray_PopCount(t *testing.T) {
	a := NewBitArray()
	a.AppendBits(0xFF, 8)
	a.AppendBits(0x00, 8)
	if got := a.PopCount(); got != 8 {
		t.Errorf("PopCount() = %d, want 8", got)
	}
}

func TestBitArray_AppendBitArray(t *testing.T) {
	a := NewBitArray()
	a.AppendBits(0b10, 2)
	b := NewBitArray()
	b.AppendBits(0b011, 3)
	a.AppendBitArray(b)
	if a.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", a.Size())
	}
	want := []bool{true, false, false, true, true}
	for i, w := range want {
		if got := a.Get(i); got != w {
			t.Errorf("bit %d = %v, want %v", i, got, w)
		}
	}
}
