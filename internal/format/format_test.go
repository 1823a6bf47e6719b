package format

import (
	"math/bits"
	"testing"

	"github.com/barcodelab/qrdecode/internal/qrversion"
)

func TestValidFormatWords_MinimumDistanceAtLeastSeven(t *testing.T) {
	// BCH(15,5) has a designed minimum distance of 7 between any two
	// distinct valid codewords; this guarantees unambiguous correction
	// up to distance 3 (spec.md section 8 property 7).
	for i := 0; i < 32; i++ {
		for j := i + 1; j < 32; j++ {
			d := bits.OnesCount32(validFormatWords[i] ^ validFormatWords[j])
			if d < 7 {
				t.Fatalf("codewords %d and %d differ by only %d bits, want >= 7", i, j, d)
			}
		}
	}
}

func TestDecodeFormat_ExactMatchRoundTrips(t *testing.T) {
	for d := uint32(0); d < 32; d++ {
		raw := validFormatWords[d] ^ formatMask
		info, ok := DecodeFormat(raw, true, 0, false)
		if !ok {
			t.Fatalf("data %d: DecodeFormat failed to decode an exact match", d)
		}
		wantLevel, _ := qrversion.ECLevelFromFormatBits(uint8(d >> 3))
		wantMask := d & 7
		if info.ECLevel != wantLevel || uint32(info.MaskIndex) != wantMask {
			t.Errorf("data %d: decoded (%v,%d), want (%d,%d)", d, info.ECLevel, info.MaskIndex, wantLevel, wantMask)
		}
	}
}

func TestDecodeFormat_CorrectsUpToThreeBitErrors(t *testing.T) {
	for d := uint32(0); d < 32; d++ {
		raw := validFormatWords[d] ^ formatMask
		for bit := 0; bit < 15; bit++ {
			corrupted := raw ^ (1 << uint(bit))
			info, ok := DecodeFormat(corrupted, true, 0, false)
			if !ok {
				t.Fatalf("data %d bit %d: single-bit error was not corrected", d, bit)
			}
			wantLevel, _ := qrversion.ECLevelFromFormatBits(uint8(d >> 3))
			if info.ECLevel != wantLevel || uint32(info.MaskIndex) != d&7 {
				t.Errorf("data %d bit %d: decoded wrong value", d, bit)
			}
		}
	}
}

func TestDecodeFormat_RejectsDistanceFour(t *testing.T) {
	// Flip 4 bits of codeword 0; this must not silently decode to a
	// different valid codeword the nearest-neighbor rule wasn't meant to
	// reach, nor should it ever decode to the original (it's different).
	raw := validFormatWords[0] ^ formatMask
	corrupted := raw ^ 0xF // flip low 4 bits
	unmasked := corrupted ^ formatMask
	_, dist := nearestFormatWord(unmasked)
	if dist <= 3 {
		t.Skip("this particular 4-bit flip happens to land within 3 of some codeword; not a general property")
	}
	if _, ok := DecodeFormat(corrupted, true, 0, false); ok {
		t.Error("expected DecodeFormat to fail for a word farther than distance 3 from every codeword")
	}
}

func TestDecodeVersion_ExactMatchRoundTrips(t *testing.T) {
	for v := 7; v <= 40; v++ {
		got, ok := DecodeVersion(validVersionWords[v], true, 0, false)
		if !ok || got != v {
			t.Errorf("version %d: DecodeVersion = (%d,%v), want (%d,true)", v, got, ok, v)
		}
	}
}
