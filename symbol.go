package qrdecode

import (
	"fmt"
	"math"

	"github.com/barcodelab/qrdecode/internal/bitmatrix"
	"github.com/barcodelab/qrdecode/internal/bitstream"
	"github.com/barcodelab/qrdecode/internal/charset"
	"github.com/barcodelab/qrdecode/internal/detect"
	"github.com/barcodelab/qrdecode/internal/format"
	"github.com/barcodelab/qrdecode/internal/interleave"
	"github.com/barcodelab/qrdecode/internal/mask"
	"github.com/barcodelab/qrdecode/internal/qrversion"
	"github.com/barcodelab/qrdecode/internal/rsdecode"
	"github.com/barcodelab/qrdecode/internal/sample"
)

// attempt threads the orchestrator's retry state (spec.md section
// 4.11) through a single pipeline run: which rotation was applied and
// whether the image was mirrored.
type attempt struct {
	orientation int // degrees: one of 0, 90, 180, 270
	mirrored    bool
}

// decodeSymbols runs C3 through C11 over one binarized matrix and
// returns every symbol found: FindFinderPatterns/SelectTriples can
// report multiple confirmed, disjoint finder triples in a crowded
// image, and each is decoded independently up to opts.MaxNumberOfSymbols
// (spec.md section 4.11's orchestrator aggregates per-symbol results).
func decodeSymbols(bits *bitmatrix.BitMatrix, a attempt, opts Options) []Result {
	finders := detect.FindFinderPatterns(bits)
	triples := detect.SelectTriples(finders, opts.MaxNumberOfSymbols)
	if len(triples) == 0 {
		return nil
	}

	var results []Result
	for _, tpl := range triples {
		result, decErr := decodeOneSymbol(bits, tpl.TopLeft, tpl.TopRight, tpl.BottomLeft, a, opts)
		if decErr != nil {
			if opts.ReturnErrors {
				results = append(results, Result{Err: decErr, Orientation: a.orientation, IsMirrored: a.mirrored})
			}
			continue
		}
		results = append(results, *result)
		if opts.MaxNumberOfSymbols > 0 && len(results) >= opts.MaxNumberOfSymbols {
			break
		}
	}
	return results
}

func decodeOneSymbol(bits *bitmatrix.BitMatrix, tl, tr, bl detect.Finder, a attempt, opts Options) (*Result, *Error) {
	moduleSize := (tl.ModuleSize + tr.ModuleSize + bl.ModuleSize) / 3
	if moduleSize <= 0 {
		return nil, formatError("detect", "degenerate module size estimate")
	}

	dist := math.Hypot(tr.X-tl.X, tr.Y-tl.Y)
	modulesAcross := dist/moduleSize + 7
	dimension := int(modulesAcross + 0.5)
	dimension = nearestValidDimension(dimension)
	version, ok := qrversion.DimensionToVersionModel2(dimension)
	if !ok {
		if dimension > 177 {
			return nil, formatError("detect", "no valid QR version for estimated dimension %d", dimension)
		}
		// Above version 6 the dimension is only a sampling estimate; the
		// version bits read after sampling decide the version.
		version = (dimension - 17) / 4
	}

	v, err := qrversion.ModelTwoVersion(version)
	if err != nil {
		return nil, formatError("qrversion", "%v", err)
	}

	// Finder centers sit 3.5 modules in from the symbol's outer corners.
	dim := float64(v.Dimension)
	brExtrapolated := [2]float64{tr.X + bl.X - tl.X, tr.Y + bl.Y - tl.Y}
	transform := sample.BuildTransformGeneral(
		[4][2]float64{{3.5, 3.5}, {dim - 3.5, 3.5}, {dim - 3.5, dim - 3.5}, {3.5, dim - 3.5}},
		[4][2]float64{{tl.X, tl.Y}, {tr.X, tr.Y}, brExtrapolated, {bl.X, bl.Y}},
	)

	if centers := v.AlignmentPatternCenters(); len(centers) > 0 {
		ac := float64(centers[len(centers)-1])
		estX, estY := transform.Apply(ac+0.5, ac+0.5)
		searchRadius := int(moduleSize*3) + 3
		if ax, ay, ok := detect.FindAlignmentPattern(bits, estX, estY, searchRadius); ok {
			transform = sample.BuildTransformGeneral(
				[4][2]float64{{3.5, 3.5}, {dim - 3.5, 3.5}, {ac + 0.5, ac + 0.5}, {3.5, dim - 3.5}},
				[4][2]float64{{tl.X, tl.Y}, {tr.X, tr.Y}, {ax, ay}, {bl.X, bl.Y}},
			)
		}
	}

	sampled, err := sample.Sample(bits, v.Dimension, transform)
	if err != nil {
		return nil, formatError("sample", "%v", err)
	}
	defer sampled.Release()

	rawA, rawB := readFormatBits(sampled)
	info, ok := format.DecodeFormat(rawA, true, rawB, true)
	if !ok {
		return nil, formatError("format", "could not recover format information")
	}

	if v.Dimension >= 45 {
		vRawA, vRawB := readVersionBits(sampled)
		recovered, ok := format.DecodeVersion(vRawA, true, vRawB, true)
		if !ok {
			return nil, formatError("format", "could not recover version information")
		}
		if recovered != v.Number {
			v, err = qrversion.ModelTwoVersion(recovered)
			if err != nil {
				return nil, formatError("qrversion", "%v", err)
			}
		}
	}

	fm := v.FunctionModuleMask()
	defer fm.Release()
	mask.Apply(sampled, fm, info.MaskIndex)

	rawCodewords := interleave.ReadCodewords(sampled, fm, v.TotalCodewords)
	blocks := interleave.Deinterleave(rawCodewords, v.ECBlocksFor(info.ECLevel))

	dataBytes := make([]byte, 0, v.DataCodewords(info.ECLevel))
	for _, b := range blocks {
		codewords := make([]int, len(b.Codewords))
		for i, c := range b.Codewords {
			codewords[i] = int(c)
		}
		if _, err := rsdecode.Correct(codewords, len(b.Codewords)-b.NumDataCodewords); err != nil {
			return nil, checksumError("rsdecode", "%v", err)
		}
		for i := 0; i < b.NumDataCodewords; i++ {
			dataBytes = append(dataBytes, byte(codewords[i]))
		}
	}

	bucket := bitstream.BucketForVersion(v.Number)
	segments, err := bitstream.Decode(dataBytes, bucket)
	if err != nil {
		return nil, formatError("bitstream", "%v", err)
	}

	dr := assembleDecoderResult(segments, info.ECLevel, opts)
	dr.IsMirrored = a.mirrored

	var position [4]Point2f
	for i, c := range [4][2]float64{{0, 0}, {dim, 0}, {dim, dim}, {0, dim}} {
		position[i].X, position[i].Y = transform.Apply(c[0], c[1])
	}

	return &Result{
		Text:     dr.Text,
		Bytes:    dr.RawBytes,
		Format:   FormatQRCode,
		Position: position,
		Orientation:         a.orientation,
		ECLevel:             info.ECLevel.String(),
		SymbologyIdentifier: symbologyIdentifier(dr.SymbologyModifier),
		SequenceSize: func() int {
			if dr.StructuredAppend != nil {
				return dr.StructuredAppend.Count
			}
			return 0
		}(),
		SequenceIndex: func() int {
			if dr.StructuredAppend != nil {
				return dr.StructuredAppend.Index
			}
			return 0
		}(),
		SequenceID: func() string {
			if dr.StructuredAppend != nil {
				return fmt.Sprintf("%02x-%d", dr.StructuredAppend.Parity, dr.StructuredAppend.Count)
			}
			return ""
		}(),
		IsMirrored: a.mirrored,
	}, nil
}

// nearestValidDimension rounds an estimated dimension to the nearest
// value of the form 21+4k, k>=0 (spec.md section 3's DetectorResult
// invariant).
func nearestValidDimension(d int) int {
	if d < 21 {
		return 21
	}
	k := (d - 21 + 2) / 4
	return 21 + 4*k
}

// assembleDecoderResult walks the decoded segments, tracking the active
// ECI, concatenating text and raw bytes, and filling in structured
// append metadata (spec.md section 4.10's closing paragraph and the
// DecoderResult data model).
func assembleDecoderResult(segments []bitstream.Segment, ecLevel ECLevel, opts Options) DecoderResult {
	dr := DecoderResult{ECLevel: ecLevel}
	activeSet := charset.Unknown
	eciDeclared := false
	var textBuf []byte

	for _, seg := range segments {
		switch seg.Mode {
		case bitstream.ModeNumeric, bitstream.ModeAlphanumeric:
			textBuf = append(textBuf, seg.Text...)
			dr.RawBytes = append(dr.RawBytes, seg.Text...)
		case bitstream.ModeByte:
			dr.RawBytes = append(dr.RawBytes, seg.Bytes...)
			set := activeSet
			if !eciDeclared {
				set = charset.Active().Guess(seg.Bytes, opts.CharacterSet)
			}
			textBuf = append(textBuf, charset.Active().ToUTF8(seg.Bytes, set)...)
			dr.CharacterSet = set
		case bitstream.ModeKanji:
			dr.RawBytes = append(dr.RawBytes, seg.Bytes...)
			textBuf = append(textBuf, charset.Active().ToUTF8(seg.Bytes, charset.ShiftJIS)...)
		case bitstream.ModeECI:
			eciDeclared = true
			if set, ok := charset.ECIValueToSet(seg.ECIValue); ok {
				activeSet = set
			}
		case bitstream.ModeStructuredAppend:
			dr.StructuredAppend = &StructuredAppendInfo{
				Index:  seg.StructuredAppend.Index,
				Count:  seg.StructuredAppend.TotalCount,
				Parity: seg.StructuredAppend.Parity,
			}
		case bitstream.ModeFNC1First, bitstream.ModeFNC1Second:
			dr.SymbologyModifier = fnc1Modifier(seg.Mode)
		}
	}

	dr.Text = renderText(textBuf, dr.RawBytes, opts.TextMode)
	return dr
}

// renderText applies the TextMode rendering spec.md section 6 names:
// Plain returns the decoded Unicode text as-is, Hex renders the raw
// pre-transcoding bytes as lowercase hex digits, and Escaped renders the
// decoded text with control bytes written as \xNN escapes.
func renderText(decoded, raw []byte, mode TextMode) string {
	switch mode {
	case TextModeHex:
		const hexDigits = "0123456789abcdef"
		out := make([]byte, len(raw)*2)
		for i, b := range raw {
			out[i*2] = hexDigits[b>>4]
			out[i*2+1] = hexDigits[b&0xF]
		}
		return string(out)
	case TextModeEscaped:
		var out []byte
		for _, b := range decoded {
			if b < 0x20 || b == 0x7F {
				out = append(out, []byte(fmt.Sprintf("\\x%02x", b))...)
				continue
			}
			out = append(out, b)
		}
		return string(out)
	default:
		return string(decoded)
	}
}

func fnc1Modifier(m bitstream.Mode) int {
	if m == bitstream.ModeFNC1First {
		return 1
	}
	return 2
}

// symbologyIdentifier renders the AIM symbology identifier for a QR
// Code (]Q<modifier>): modifier 1 is GS1 (FNC1 first position),
// modifier 2 is AIM FNC1 in the second position, 0 is the plain case.
func symbologyIdentifier(modifier int) string {
	switch modifier {
	case 1:
		return "]Q1"
	case 2:
		return "]Q2"
	default:
		return "]Q0"
	}
}
