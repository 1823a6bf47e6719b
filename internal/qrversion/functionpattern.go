package qrversion

import "github.com/barcodelab/qrdecode/internal/bitmatrix"

// FunctionModuleMask returns a BitMatrix with every function module (timing
// patterns, finder patterns + separators, alignment patterns, format and
// version information areas, and the dark module) set to true. Data-mask
// application and de-interleaving both need this to know which modules
// carry codeword bits versus structural information.
//
// Ported from nayuki-QR-Code-generator/golang/qrcodegen.go's
// drawFunctionPatterns/drawFinderPattern/drawAlignmentPattern/
// drawFormatBits/drawVersion, which mark the same modules while encoding;
// decoding needs the identical set to skip when walking the zig-zag.
func (v *Version) FunctionModuleMask() *bitmatrix.BitMatrix {
	size := v.Dimension
	m := bitmatrix.New(size, size)

	for i := 0; i < size; i++ {
		m.Set(6, i)
		m.Set(i, 6)
	}

	markFinder := func(cx, cy int) {
		for dy := -4; dy <= 4; dy++ {
			for dx := -4; dx <= 4; dx++ {
				x, y := cx+dx, cy+dy
				if x >= 0 && x < size && y >= 0 && y < size {
					m.Set(x, y)
				}
			}
		}
	}
	markFinder(3, 3)
	markFinder(size-4, 3)
	markFinder(3, size-4)

	centers := v.AlignmentPatternCenters()
	n := len(centers)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == 0 && j == 0 || i == 0 && j == n-1 || i == n-1 && j == 0 {
				continue
			}
			cx, cy := centers[i], centers[j]
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					m.Set(cx+dx, cy+dy)
				}
			}
		}
	}

	for i := 0; i < 9; i++ {
		m.Set(8, i)
		m.Set(i, 8)
	}
	for i := 0; i < 8; i++ {
		m.Set(size-1-i, 8)
		m.Set(8, size-1-i)
	}
	m.Set(8, size-8)

	if v.Number >= 7 {
		for i := 0; i < 6; i++ {
			for j := 0; j < 3; j++ {
				m.Set(size-11+j, i)
				m.Set(i, size-11+j)
			}
		}
	}

	return m
}

// DarkModulePosition returns the dark module's position, (8,
// dimension-8); that module is dark regardless of mask or content.
func (v *Version) DarkModulePosition() (x, y int) { return 8, v.Dimension - 8 }
