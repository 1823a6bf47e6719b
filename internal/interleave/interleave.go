// Package interleave implements C9: reading raw codewords out of a
// sampled, unmasked QR matrix in the standard zig-zag order, and
// splitting them into per-block DataBlocks ready for Reed-Solomon
// correction. Both the zig-zag traversal and the interleaving pattern
// are the exact inverse of
// nayuki-QR-Code-generator/golang/qrcodegen.go's drawCodewords (reading
// bits instead of writing them) and addEccAndInterleave (redistributing
// instead of interleaving), so the decoder recovers exactly the bytes
// the encoder wrote.
package interleave

import (
	"github.com/barcodelab/qrdecode/internal/bitmatrix"
	"github.com/barcodelab/qrdecode/internal/qrversion"
)

// ReadCodewords walks the matrix's data region in QR's two-column zig-zag
// (skipping the column at x=6, the vertical timing pattern, by jumping
// from 7 to 5) and returns the first totalCodewords bytes encountered,
// MSB bit first within each byte. Trailing remainder-bit modules beyond
// totalCodewords*8 bits are ignored, matching the encoder leaving them
// unset.
func ReadCodewords(m *bitmatrix.BitMatrix, functionMask *bitmatrix.BitMatrix, totalCodewords int) []byte {
	size := m.Width()
	needBits := totalCodewords * 8
	bits := bitmatrix.NewBitArray()

	right := size - 1
	for right >= 1 && bits.Size() < needBits {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < size && bits.Size() < needBits; vert++ {
			for j := 0; j < 2 && bits.Size() < needBits; j++ {
				x := right - j
				upward := (right+1)&2 == 0
				var y int
				if upward {
					y = size - 1 - vert
				} else {
					y = vert
				}
				if !functionMask.Get(x, y) {
					bits.AppendBit(m.Get(x, y))
				}
			}
		}
		right -= 2
	}

	return bits.ToBytes(0, needBits)
}

// DataBlock is the per-block view Reed-Solomon correction consumes:
// Codewords holds data followed by EC bytes; NumDataCodewords marks the
// split point.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// Deinterleave splits rawCodewords (as returned by ReadCodewords) into
// per-block DataBlocks, inverting the column-interleaving
// addEccAndInterleave performs at encode time.
func Deinterleave(rawCodewords []byte, layout qrversion.ECBlockInfo) []DataBlock {
	numBlocks := layout.TotalBlocks()
	shortBlockLen := layout.DataPerBlock1 + layout.ECPerBlock

	blocks := make([]DataBlock, numBlocks)
	for j := 0; j < numBlocks; j++ {
		dataLen := layout.DataPerBlock1
		if j >= layout.NumBlocks1 {
			dataLen++
		}
		blocks[j] = DataBlock{
			NumDataCodewords: dataLen,
			Codewords:        make([]byte, dataLen+layout.ECPerBlock),
		}
	}

	pos := 0
	for i := 0; i <= shortBlockLen; i++ {
		for j := 0; j < numBlocks; j++ {
			isShort := j < layout.NumBlocks1
			if i == layout.DataPerBlock1 && isShort {
				continue // padding position for short blocks, never transmitted
			}
			if pos >= len(rawCodewords) {
				continue
			}
			b := rawCodewords[pos]
			pos++

			switch {
			case i < layout.DataPerBlock1:
				blocks[j].Codewords[i] = b
			case i == layout.DataPerBlock1:
				// only long blocks reach here (short blocks skipped above)
				blocks[j].Codewords[i] = b
			default:
				ecIdx := i - layout.DataPerBlock1 - 1
				blocks[j].Codewords[blocks[j].NumDataCodewords+ecIdx] = b
			}
		}
	}
	return blocks
}
