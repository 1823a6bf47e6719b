// Package qrdecode implements the read-only, in-process matrix-barcode
// decoding pipeline: image binarization, finder/alignment detection,
// perspective sampling, QR format/version recovery, data-mask removal,
// error-correction block de-interleaving, Reed-Solomon correction, and
// multi-mode bit-stream decoding. A single call to Decode takes one
// image, runs the pipeline to completion, and returns; it never mutates
// or retains the input and carries no state between calls (spec section
// 5). Callers may invoke Decode concurrently from multiple goroutines as
// long as each call uses disjoint inputs and outputs.
package qrdecode

import (
	"github.com/barcodelab/qrdecode/internal/charset"
	"github.com/barcodelab/qrdecode/internal/luminance"
	"github.com/barcodelab/qrdecode/internal/qrversion"
)

// Point2f is a sub-pixel image-space coordinate.
type Point2f struct {
	X, Y float64
}

// Point2i is a whole-pixel image-space coordinate.
type Point2i struct {
	X, Y int
}

// ResultPoint is a named keypoint, usually a finder-pattern center, with
// sub-pixel accuracy and an estimated module size in source-image pixels.
type ResultPoint struct {
	Point2f
	EstimatedModuleSize float64
}

// Format identifies the recognized symbology variant.
type Format int

const (
	FormatQRCode Format = iota
	FormatMicroQRCode
	FormatRMQRCode
)

func (f Format) String() string {
	switch f {
	case FormatQRCode:
		return "QRCode"
	case FormatMicroQRCode:
		return "MicroQRCode"
	case FormatRMQRCode:
		return "rMQRCode"
	default:
		return "Unknown"
	}
}

// ECLevel is the QR error-correction level, re-exported from
// internal/qrversion so decode internals and the public API share one
// definition without internal packages leaking into callers' import
// graphs directly.
type ECLevel = qrversion.ECLevel

const (
	ECLevelL = qrversion.ECLevelL
	ECLevelM = qrversion.ECLevelM
	ECLevelQ = qrversion.ECLevelQ
	ECLevelH = qrversion.ECLevelH
)

// CharacterSet identifies a byte-segment text encoding, re-exported from
// internal/charset for the same reason ECLevel is re-exported above.
type CharacterSet = charset.Set

const (
	CharsetUnknown   = charset.Unknown
	CharsetASCII     = charset.ASCII
	CharsetISO8859_1 = charset.ISO8859_1
	CharsetUTF8      = charset.UTF8
	CharsetShiftJIS  = charset.ShiftJIS
	CharsetUTF16BE   = charset.UTF16BE
)

// TextMode selects how non-printable bytes and ECI transitions render
// into Result.Text.
type TextMode int

const (
	TextModePlain TextMode = iota
	TextModeECI
	TextModeHRI
	TextModeHex
	TextModeEscaped
)

// BinarizerKind selects the thresholding strategy C2 uses.
type BinarizerKind int

const (
	BinarizerLocalAverage BinarizerKind = iota
	BinarizerGlobalHistogram
	BinarizerFixedThreshold
	BinarizerBoolCast
)

// PixelFormat names the layout of the source image buffer (spec section
// 6), re-exported from internal/luminance.
type PixelFormat = luminance.PixelFormat

const (
	PixelLum  = luminance.Lum
	PixelRGB  = luminance.RGB
	PixelRGBX = luminance.RGBX
	PixelBGR  = luminance.BGR
	PixelBGRX = luminance.BGRX
	PixelXRGB = luminance.XRGB
	PixelXBGR = luminance.XBGR
	PixelRGBA = luminance.RGBA
)

// DecoderResult carries the bit-stream decoder's (C11) output before the
// orchestrator packages it into a public Result.
type DecoderResult struct {
	RawBytes           []byte
	Text               string
	ECLevel            ECLevel
	CharacterSet       CharacterSet
	SymbologyModifier  int
	IsMirrored         bool
	StructuredAppend   *StructuredAppendInfo
	ContentError       bool // never set by the decoder: malformed segments are not flagged here
}

// StructuredAppendInfo carries the GLOSSARY's Structured Append triple.
type StructuredAppendInfo struct {
	Index int // 0-based symbol index within the sequence
	Count int // total symbols in the sequence
	Parity byte
}

// Result is the public, per-symbol decode outcome (spec section 6).
type Result struct {
	Text                string
	Bytes               []byte
	Format              Format
	Position            [4]Point2f // four image-space corners
	Orientation         int        // degrees, one of {0,90,180,270}
	ECLevel             string
	SymbologyIdentifier string
	SequenceSize        int
	SequenceIndex       int
	SequenceID          string
	ReaderInit          bool
	LineCount           int
	IsMirrored          bool
	Err                 *Error
}
