package qrdecode

import (
	"fmt"

	"github.com/barcodelab/qrdecode/internal/binarize"
	"github.com/barcodelab/qrdecode/internal/bitmatrix"
	"github.com/barcodelab/qrdecode/internal/luminance"
)

// Decode runs the full pipeline (spec section 4) over one borrowed image
// and returns every symbol found, subject to opts. It never retains img
// after returning.
func Decode(img Image, opts Options) ([]Result, error) {
	src, err := luminance.FromImage(img.Data, img.Width, img.Height, img.RowStride, img.PixStride, img.Format)
	if err != nil {
		return nil, fmt.Errorf("qrdecode: %w", err)
	}

	binMode := binarize.Mode(opts.Binarizer)

	var results []Result
	seen := make(map[string]bool)

	tryOn := func(source *luminance.Source, orientation int, mirrored bool) {
		if opts.MaxNumberOfSymbols > 0 && len(results) >= opts.MaxNumberOfSymbols {
			return
		}
		bits := binarize.Binarize(source, binMode, opts.FixedThreshold)
		rotated := rotateBitMatrix(bits, orientation)
		if rotated != bits {
			bits.Release()
		}
		if mirrored {
			m := rotated.Mirror()
			rotated.Release()
			rotated = m
		}
		defer rotated.Release()
		for _, r := range decodeSymbols(rotated, attempt{orientation: orientation, mirrored: mirrored}, opts) {
			key := fmt.Sprintf("%s|%v", r.Text, r.Position)
			if seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, r)
			if opts.MaxNumberOfSymbols > 0 && len(results) >= opts.MaxNumberOfSymbols {
				return
			}
		}
	}

	orientations := []int{0}
	if opts.TryRotate {
		orientations = []int{0, 90, 180, 270}
	}

	sources := []*luminance.Source{src}
	if opts.TryInvert {
		sources = append(sources, src.Invert())
	}

	for _, s := range sources {
		for _, o := range orientations {
			tryOn(s, o, false)
			if opts.MaxNumberOfSymbols > 0 && len(results) >= opts.MaxNumberOfSymbols {
				return results, nil
			}
			// Mirrored format recovery (spec.md section 4.11 step 4): a
			// symbol printed or scanned through its substrate backwards
			// swaps topRight and bottomLeft relative to topLeft, so it
			// needs its own detection pass rather than falling out of the
			// rotation sweep above.
			tryOn(s, o, true)
			if opts.MaxNumberOfSymbols > 0 && len(results) >= opts.MaxNumberOfSymbols {
				return results, nil
			}
		}
	}

	return results, nil
}

// rotateBitMatrix applies a clockwise rotation of the given number of
// degrees (one of 0, 90, 180, 270) to a freshly binarized matrix.
func rotateBitMatrix(bits *bitmatrix.BitMatrix, degrees int) *bitmatrix.BitMatrix {
	switch degrees {
	case 90:
		return bits.Rotate90()
	case 180:
		bits.Rotate180()
		return bits
	case 270:
		r := bits.Rotate90()
		r.Rotate180()
		return r
	default:
		return bits
	}
}
