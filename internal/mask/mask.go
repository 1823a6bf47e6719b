// Package mask implements QR's eight data-mask functions (spec.md
// section 4.7), ported from the predicate expressions in
// nayuki-QR-Code-generator/golang/qrcodegen.go's applyMask, which encodes
// them with x=column, y=row; spec.md names them with i=row, j=column, so
// each predicate below is restated as predicate(i,j) with the identical
// arithmetic (addition and multiplication are commutative, so the two
// orderings are the same function).
package mask

import "github.com/barcodelab/qrdecode/internal/bitmatrix"

// Predicate reports whether mask index idx inverts the module at row i,
// column j.
func Predicate(idx int, i, j int) bool {
	switch idx {
	case 0:
		return (i+j)%2 == 0
	case 1:
		return i%2 == 0
	case 2:
		return j%3 == 0
	case 3:
		return (i+j)%3 == 0
	case 4:
		return (i/2+j/3)%2 == 0
	case 5:
		return (i*j)%2+(i*j)%3 == 0
	case 6:
		return ((i*j)%2+(i*j)%3)%2 == 0
	case 7:
		return ((i+j)%2+(i*j)%3)%2 == 0
	default:
		return false
	}
}

// microPredicateIndex maps a Micro QR 2-bit mask pattern reference to the
// corresponding full-set predicate index. Micro QR (ISO/IEC 18004 Annex
// C) reuses a 4-pattern subset of the 8 full-symbol masks; this mapping
// is partially documented in the pack's original_source extraction and is
// carried here as the commonly published {1,4,6,7} subset rather than
// re-derived, per spec.md section 9's note to not infer unpublished
// table entries.
var microPredicateIndex = [4]int{1, 4, 6, 7}

// MicroPredicate reports whether Micro QR mask pattern idx (0..3) inverts
// the module at row i, column j.
func MicroPredicate(idx int, i, j int) bool {
	if idx < 0 || idx >= len(microPredicateIndex) {
		return false
	}
	return Predicate(microPredicateIndex[idx], i, j)
}

// Apply XORs every non-function module of m where the mask predicate
// holds. Calling Apply twice with the same index is the identity
// (spec.md section 8 property 6), since XOR is its own inverse.
func Apply(m *bitmatrix.BitMatrix, functionMask *bitmatrix.BitMatrix, idx int) {
	applyWith(m, functionMask, func(i, j int) bool { return Predicate(idx, i, j) })
}

// ApplyMicro is Apply's Micro QR counterpart.
func ApplyMicro(m *bitmatrix.BitMatrix, functionMask *bitmatrix.BitMatrix, idx int) {
	applyWith(m, functionMask, func(i, j int) bool { return MicroPredicate(idx, i, j) })
}

func applyWith(m, functionMask *bitmatrix.BitMatrix, pred func(i, j int) bool) {
	h, w := m.Height(), m.Width()
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			if functionMask.Get(j, i) {
				continue
			}
			if pred(i, j) {
				m.Flip(j, i)
			}
		}
	}
}
