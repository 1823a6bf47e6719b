package sample

import (
	"github.com/barcodelab/qrdecode/internal/bitmatrix"
)

// Bits is the read surface the sampler consumes; satisfied by
// *bitmatrix.BitMatrix.
type Bits interface {
	Width() int
	Height() int
	Get(x, y int) bool
}

// Sample builds an N×N logical BitMatrix by mapping each module center
// (i+0.5, j+0.5) through the transform into image space and reading the
// nearest-neighbor pixel. A module center landing outside the source
// image is a Format-level failure (spec.md section 4.4).
func Sample(bits Bits, dimension int, t Transform) (*bitmatrix.BitMatrix, error) {
	width, height := bits.Width(), bits.Height()
	out := bitmatrix.NewSquare(dimension)

	for y := 0; y < dimension; y++ {
		for x := 0; x < dimension; x++ {
			px, py := t.Apply(float64(x)+0.5, float64(y)+0.5)
			ix, iy := int(px), int(py)
			if ix < 0 || iy < 0 || ix >= width || iy >= height {
				return nil, ErrOutOfBounds
			}
			if bits.Get(ix, iy) {
				out.Set(x, y)
			}
		}
	}
	return out, nil
}
