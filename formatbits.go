package qrdecode

import "github.com/barcodelab/qrdecode/internal/bitmatrix"

// readFormatBits reads the two redundant 15-bit format-information
// copies out of a sampled, still-masked matrix. The bit positions are
// the decode-side mirror of
// nayuki-QR-Code-generator/golang/qrcodegen.go's drawFormatBits: bit i
// is the coefficient of 2^i in the 15-bit masked codeword that function
// writes.
func readFormatBits(m *bitmatrix.BitMatrix) (rawA, rawB uint32) {
	size := m.Width()
	getBit := func(x, y int, i uint) uint32 {
		if m.Get(x, y) {
			return 1 << i
		}
		return 0
	}

	for i := uint(0); i < 6; i++ {
		rawA |= getBit(8, int(i), i)
	}
	rawA |= getBit(8, 7, 6)
	rawA |= getBit(8, 8, 7)
	rawA |= getBit(7, 8, 8)
	for i := uint(9); i < 15; i++ {
		rawA |= getBit(int(14-i), 8, i)
	}

	for i := uint(0); i < 8; i++ {
		rawB |= getBit(size-1-int(i), 8, i)
	}
	for i := uint(8); i < 15; i++ {
		rawB |= getBit(8, size-15+int(i), i)
	}
	return rawA, rawB
}

// readVersionBits reads the two redundant 18-bit version-information
// blocks, present only for dimension >= 45 (model-2 version >= 7). The
// positions mirror qrcodegen.go's drawVersion, which writes the same
// bit to both (a,b) and its transpose (b,a).
func readVersionBits(m *bitmatrix.BitMatrix) (rawA, rawB uint32) {
	size := m.Width()
	for i := 0; i < 18; i++ {
		a := size - 11 + i%3
		b := i / 3
		if m.Get(a, b) {
			rawA |= 1 << uint(i)
		}
		if m.Get(b, a) {
			rawB |= 1 << uint(i)
		}
	}
	return rawA, rawB
}
