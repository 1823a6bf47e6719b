// Package luminance implements C1: turning a caller-owned image buffer
// in one of several pixel layouts into a single-channel luminance plane
// the rest of the pipeline binarizes. The weighted RGB-to-luma reduction
// is spec.md section 6's literal Rec. 601 integer formula; the
// multi-format buffer-walking style (explicit rowStride/pixStride,
// format switch, no intermediate image.Image allocation) follows
// deepteams-webp/sharpyuv/csp.go's plain-struct, no-package-level-state
// treatment of color conversion.
package luminance

import "fmt"

// PixelFormat names the layout of a source image buffer.
type PixelFormat int

const (
	Lum PixelFormat = iota
	RGB
	RGBX
	BGR
	BGRX
	XRGB
	XBGR
	RGBA
)

func (f PixelFormat) pixStride() int {
	switch f {
	case Lum:
		return 1
	case RGB, BGR:
		return 3
	default:
		return 4
	}
}

// Source is a borrowed-then-converted single-channel luminance plane:
// one byte per pixel, row-major, each row rowStride bytes long.
type Source struct {
	Width, Height int
	RowStride     int
	Data          []byte
}

// At returns the luminance value at (x,y). Callers are expected to stay
// in bounds; this is a hot path walked once per binarizer pass.
func (s *Source) At(x, y int) byte {
	return s.Data[y*s.RowStride+x]
}

// FromImage validates the input contract (spec.md section 6) and
// produces a tightly packed Source, converting non-luminance formats to
// luma via (R*299 + G*587 + B*114)/1000.
func FromImage(data []byte, width, height, rowStride, pixStride int, format PixelFormat) (*Source, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("luminance: invalid dimensions %dx%d", width, height)
	}
	wantStride := format.pixStride()
	if pixStride != wantStride {
		return nil, fmt.Errorf("luminance: pixStride %d does not match format (want %d)", pixStride, wantStride)
	}
	if pixStride != 1 && pixStride != 3 && pixStride != 4 {
		return nil, fmt.Errorf("luminance: unsupported pixStride %d", pixStride)
	}
	if rowStride < width*pixStride {
		return nil, fmt.Errorf("luminance: rowStride %d too small for width %d, pixStride %d", rowStride, width, pixStride)
	}
	if len(data) < rowStride*(height-1)+width*pixStride {
		return nil, fmt.Errorf("luminance: buffer too small for stated dimensions")
	}

	out := &Source{Width: width, Height: height, RowStride: width, Data: make([]byte, width*height)}
	for y := 0; y < height; y++ {
		srcRow := data[y*rowStride:]
		dstRow := out.Data[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			p := srcRow[x*pixStride:]
			dstRow[x] = toLuma(p, format)
		}
	}
	return out, nil
}

func toLuma(p []byte, format PixelFormat) byte {
	var r, g, b byte
	switch format {
	case Lum:
		return p[0]
	case RGB, RGBX, RGBA:
		r, g, b = p[0], p[1], p[2]
	case BGR, BGRX:
		b, g, r = p[0], p[1], p[2]
	case XRGB:
		r, g, b = p[1], p[2], p[3]
	case XBGR:
		b, g, r = p[1], p[2], p[3]
	default:
		r, g, b = p[0], p[1], p[2]
	}
	return byte((uint32(r)*299 + uint32(g)*587 + uint32(b)*114) / 1000)
}

// Invert returns a new Source with every sample complemented, used by
// the orchestrator's invert-luminance retry pass.
func (s *Source) Invert() *Source {
	out := &Source{Width: s.Width, Height: s.Height, RowStride: s.Width, Data: make([]byte, s.Width*s.Height)}
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			out.Data[y*s.Width+x] = 255 - s.At(x, y)
		}
	}
	return out
}
