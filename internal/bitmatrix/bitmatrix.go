package bitmatrix

import "github.com/barcodelab/qrdecode/internal/pool"

// BitMatrix is a dense rectangular grid of bits, immutable after
// construction from the caller's point of view except for the explicit
// mutators below (Set/Unset/Flip/XOR/Rotate180/Mirror) used while the
// sampler and data-mask stages build and adjust it.
//
// x is the column (0..width-1), y is the row (0..height-1); the origin is
// the top-left, matching original_source/src/BitMatrix.h. Storage is
// row-major with each row starting at a new word boundary (rowWords =
// ceil(width/32)), so ExtractRow never needs to shift bits across a word
// boundary.
type BitMatrix struct {
	width, height int
	rowWords      int
	bits          []uint32
}

// New returns a width x height BitMatrix, all bits clear. The backing
// store comes from the shared word pool (internal/pool): every sampled
// symbol matrix and function-module mask built during a decode is
// call-scoped, so callers should return it with Release when done.
func New(width, height int) *BitMatrix {
	rowWords := (width + 31) / 32
	n := rowWords * height
	bits := pool.GetUint32(n)
	for i := range bits {
		bits[i] = 0
	}
	return &BitMatrix{
		width:    width,
		height:   height,
		rowWords: rowWords,
		bits:     bits,
	}
}

// NewSquare returns a dimension x dimension BitMatrix.
func NewSquare(dimension int) *BitMatrix { return New(dimension, dimension) }

// Release returns m's backing storage to the shared word pool. m must not
// be used after calling Release, and must not be released twice or while
// another BitMatrix still holds a reference to the same storage (Clone
// and Rotate90/Mirror's output never share storage with their input, so
// this only matters for a matrix passed directly to Release by the
// component that built it).
func (m *BitMatrix) Release() {
	pool.PutUint32(m.bits)
	m.bits = nil
}

func (m *BitMatrix) Width() int  { return m.width }
func (m *BitMatrix) Height() int { return m.height }

func (m *BitMatrix) offset(x, y int) int { return y*m.rowWords + x/32 }

// Get returns the bit at (x,y). true means a dark/black module.
func (m *BitMatrix) Get(x, y int) bool {
	return (m.bits[m.offset(x, y)]>>(uint(x)%32))&1 != 0
}

// Set sets (x,y) to true.
func (m *BitMatrix) Set(x, y int) {
	m.bits[m.offset(x, y)] |= 1 << (uint(x) % 32)
}

// Unset sets (x,y) to false.
func (m *BitMatrix) Unset(x, y int) {
	m.bits[m.offset(x, y)] &^= 1 << (uint(x) % 32)
}

// SetBool sets (x,y) to the given value.
func (m *BitMatrix) SetBool(x, y int, v bool) {
	if v {
		m.Set(x, y)
	} else {
		m.Unset(x, y)
	}
}

// Flip inverts the bit at (x,y).
func (m *BitMatrix) Flip(x, y int) {
	m.bits[m.offset(x, y)] ^= 1 << (uint(x) % 32)
}

// FlipAll inverts every bit in place.
func (m *BitMatrix) FlipAll() {
	for i := range m.bits {
		m.bits[i] = ^m.bits[i]
	}
	m.maskTrailingBits()
}

// maskTrailingBits clears bits beyond width in the last word of each row,
// which FlipAll would otherwise set spuriously.
func (m *BitMatrix) maskTrailingBits() {
	rem := m.width % 32
	if rem == 0 {
		return
	}
	lastWordMask := uint32(1)<<uint(rem) - 1
	for y := 0; y < m.height; y++ {
		idx := y*m.rowWords + m.rowWords - 1
		m.bits[idx] &= lastWordMask
	}
}

// XOR flips every bit of m where mask has a set bit. Widths/heights must match.
func (m *BitMatrix) XOR(mask *BitMatrix) {
	if mask.width != m.width || mask.height != m.height {
		panic("bitmatrix: XOR: dimension mismatch")
	}
	for i := range m.bits {
		m.bits[i] ^= mask.bits[i]
	}
}

// Clear resets every bit to false.
func (m *BitMatrix) Clear() {
	for i := range m.bits {
		m.bits[i] = 0
	}
}

// SetRegion sets a rectangular region [left,top)..[left+w,top+h) to true.
func (m *BitMatrix) SetRegion(left, top, w, h int) {
	for y := top; y < top+h; y++ {
		for x := left; x < left+w; x++ {
			m.Set(x, y)
		}
	}
}

// ExtractRow returns row y as a BitArray. Because each row starts on a
// word boundary, this is a direct word-slice copy with no shifting.
func (m *BitMatrix) ExtractRow(y int) *BitArray {
	start := y * m.rowWords
	row := &BitArray{
		bits: append([]uint32(nil), m.bits[start:start+m.rowWords]...),
		size: m.width,
	}
	return row
}

// Rotate180 rotates the matrix by 180 degrees in place, used by the
// orchestrator's rotation retries.
func (m *BitMatrix) Rotate180() {
	w, h := m.width, m.height
	for y := 0; y < (h+1)/2; y++ {
		topRow := m.ExtractRow(y)
		bottomRow := m.ExtractRow(h - 1 - y)
		topRow.Reverse()
		bottomRow.Reverse()
		m.setRow(h-1-y, topRow)
		if y != h-1-y {
			m.setRow(y, bottomRow)
		}
	}
	_ = w
}

func (m *BitMatrix) setRow(y int, row *BitArray) {
	for x := 0; x < m.width; x++ {
		m.SetBool(x, y, row.Get(x))
	}
}

// Rotate90 rotates the matrix 90 degrees clockwise and returns a new
// matrix (dimensions swap for non-square inputs; QR/Micro-QR/rMQR
// matrices sampled by this engine are always square).
func (m *BitMatrix) Rotate90() *BitMatrix {
	out := New(m.height, m.width)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				out.Set(m.height-1-y, x)
			}
		}
	}
	return out
}

// Mirror returns the transpose of m (x<->y), used by the orchestrator's
// mirrored-symbol retry pass. Unlike Rotate180 this cannot work in
// place in general: a photographed source image is rarely square, and
// transposing it swaps width and height.
func (m *BitMatrix) Mirror() *BitMatrix {
	out := New(m.height, m.width)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				out.Set(y, x)
			}
		}
	}
	return out
}

// Clone returns a deep copy.
func (m *BitMatrix) Clone() *BitMatrix {
	out := &BitMatrix{width: m.width, height: m.height, rowWords: m.rowWords}
	out.bits = append([]uint32(nil), m.bits...)
	return out
}
