// Package format recovers QR's format information (C6) and version
// information (C7): the error-correction level, data-mask index, and (for
// dimension >= 45) the version number, protected by BCH(15,5) and
// Golay(18,6) respectively. The generator polynomials (0x537 for format,
// 0x1F25 for version) and the format XOR mask (0x5412) are ported from
// nayuki-QR-Code-generator/golang/qrcodegen.go's drawFormatBits/
// drawVersion encoder, which computes the identical codewords this
// package must recognize.
package format

import (
	"math/bits"

	"github.com/barcodelab/qrdecode/internal/qrversion"
)

const formatMask = 0x5412

// bchRemainder computes the 10-bit BCH remainder for a 5-bit format data
// value, using generator polynomial 0x537, exactly as
// qrcodegen.go's drawFormatBits does.
func bchRemainder(data uint32) uint32 {
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * 0x537)
	}
	return rem & 0x3FF
}

// golayRemainder computes the 12-bit Golay remainder for a 6-bit version
// number, using generator polynomial 0x1F25, exactly as
// qrcodegen.go's drawVersion does.
func golayRemainder(data uint32) uint32 {
	rem := data
	for i := 0; i < 12; i++ {
		rem = (rem << 1) ^ ((rem >> 11) * 0x1F25)
	}
	return rem & 0xFFF
}

// validFormatWords[d] is the unmasked 15-bit format codeword for 5-bit
// data value d = (ecLevelFormatBits<<3 | maskIndex).
var validFormatWords [32]uint32

// validVersionWords[v] is the 18-bit version codeword for version v
// (only entries 7..40 are meaningful; model-2 versions below 7 carry no
// version region and are derived from dimension instead).
var validVersionWords [41]uint32

func init() {
	for d := uint32(0); d < 32; d++ {
		validFormatWords[d] = d<<10 | bchRemainder(d)
	}
	for v := uint32(7); v <= 40; v++ {
		validVersionWords[v] = v<<12 | golayRemainder(v)
	}
}

func hamming(a, b uint32) int { return bits.OnesCount32(a ^ b) }

// Info is the recovered format information.
type Info struct {
	ECLevel   qrversion.ECLevel
	MaskIndex int
}

// DecodeFormat recovers ECLevel/MaskIndex from the two redundant 15-bit
// format readings (spec.md section 4.5). Either reading may be zero
// value if unavailable; pass haveA/haveB to indicate which are valid.
func DecodeFormat(rawA uint32, haveA bool, rawB uint32, haveB bool) (Info, bool) {
	var bestInfo Info
	bestDist := 99
	tieBroken := false

	try := func(raw uint32, have bool) {
		if !have {
			return
		}
		unmasked := raw ^ formatMask
		d, dist := nearestFormatWord(unmasked)
		if dist > 3 {
			return
		}
		if dist < bestDist {
			bestDist = dist
			level, _ := qrversion.ECLevelFromFormatBits(uint8(d >> 3))
			bestInfo = Info{ECLevel: level, MaskIndex: int(d & 7)}
			tieBroken = dist == 0
		}
	}
	// Prefer whichever position decodes at distance 0; spec.md's
	// tie-break rule. Evaluate A first, then B only overrides a
	// non-exact A match.
	try(rawA, haveA)
	if !tieBroken {
		try(rawB, haveB)
	}
	return bestInfo, bestDist <= 3
}

func nearestFormatWord(unmasked uint32) (d uint32, dist int) {
	best := 99
	var bestD uint32
	for cand := uint32(0); cand < 32; cand++ {
		dd := hamming(unmasked, validFormatWords[cand])
		if dd < best {
			best = dd
			bestD = cand
		}
	}
	return bestD, best
}

// DecodeVersion recovers the version number from the two redundant
// 18-bit version readings (spec.md section 4.6), for dimension >= 45.
func DecodeVersion(rawA uint32, haveA bool, rawB uint32, haveB bool) (int, bool) {
	bestVer := 0
	bestDist := 99
	try := func(raw uint32, have bool) {
		if !have {
			return
		}
		for v := 7; v <= 40; v++ {
			d := hamming(raw, validVersionWords[v])
			if d < bestDist {
				bestDist = d
				bestVer = v
			}
		}
	}
	try(rawA, haveA)
	try(rawB, haveB)
	if bestDist > 3 {
		return 0, false
	}
	return bestVer, true
}
