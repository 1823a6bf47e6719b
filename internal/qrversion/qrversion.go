// Package qrversion holds the static per-version tables spec.md's data
// model calls for: dimension, alignment-pattern centers, total codewords,
// and error-correction block layout per EC level, for QR model 2
// (versions 1..40). Tables are flat, indexable static arrays — never
// cross-pointed object graphs (spec.md section 9) — and the formulas for
// raw-data-module count and alignment-pattern placement are ported from
// nayuki-QR-Code-generator/golang/qrcodegen.go's getNumRawDataModules and
// getAlignmentPatternPositions, which computes the same table spec.md
// describes as attributes rather than hand-copying a 40-row module count
// table that formula already determines exactly.
//
// Micro QR and rMQR are named in spec.md's glossary as known variants;
// internal/mask carries the Micro QR mask-predicate subset, but this
// package does not populate Micro QR/rMQR version tables (see DESIGN.md)
// — ModelTwoVersion's model-2 table is the only version family backed by
// codeword/block counts a caller can rely on.
package qrversion

import "fmt"

// ECLevel is the QR error-correction level.
type ECLevel int

const (
	ECLevelL ECLevel = iota
	ECLevelM
	ECLevelQ
	ECLevelH
)

func (e ECLevel) String() string {
	switch e {
	case ECLevelL:
		return "L"
	case ECLevelM:
		return "M"
	case ECLevelQ:
		return "Q"
	case ECLevelH:
		return "H"
	default:
		return "?"
	}
}

// FormatBits returns the 2-bit field QR format information encodes this
// level as: L=01, M=00, Q=11, H=10 (ISO/IEC 18004, confirmed against
// nayuki's QrCodeEcc.FormatBits).
func (e ECLevel) FormatBits() uint8 {
	switch e {
	case ECLevelL:
		return 1
	case ECLevelM:
		return 0
	case ECLevelQ:
		return 3
	case ECLevelH:
		return 2
	default:
		return 0
	}
}

// ECLevelFromFormatBits is the inverse of FormatBits, used by
// internal/format after BCH correction recovers the 2-bit field.
func ECLevelFromFormatBits(bits uint8) (ECLevel, bool) {
	switch bits & 0x3 {
	case 1:
		return ECLevelL, true
	case 0:
		return ECLevelM, true
	case 3:
		return ECLevelQ, true
	case 2:
		return ECLevelH, true
	}
	return 0, false
}

// eccCodewordsPerBlock and numErrorCorrectionBlocks are ported verbatim
// from nayuki-QR-Code-generator/golang/qrcodegen.go's
// ECC_CODEWORDS_PER_BLOCK / NUM_ERROR_CORRECTION_BLOCKS tables (ISO/IEC
// 18004 Table 9), indexed [ECLevel][version], version 0 unused.
var eccCodewordsPerBlock = [4][41]int{
	{-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	{-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	{-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	{-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

var numErrorCorrectionBlocks = [4][41]int{
	{-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	{-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	{-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	{-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}

// ECBlockInfo is the per-(version,level) block layout spec.md's data
// model calls DataBlock's owning structure: Group1 has NumBlocks1 blocks
// of DataPerBlock1 data codewords each, Group2 has NumBlocks2 blocks
// (possibly zero) of DataPerBlock1+1 data codewords each, and every block
// carries ECPerBlock error-correction codewords.
type ECBlockInfo struct {
	NumBlocks1   int
	DataPerBlock1 int
	NumBlocks2   int
	ECPerBlock   int
}

// TotalBlocks returns the total number of blocks across both groups.
func (b ECBlockInfo) TotalBlocks() int { return b.NumBlocks1 + b.NumBlocks2 }

// Version is a QR model-2 version table entry, versions 1..40.
type Version struct {
	Number         int
	Dimension      int
	TotalCodewords int // total data+EC codewords (raw data modules / 8)
	ecBlocks       [4]ECBlockInfo
}

// ModelTwoVersion returns the table entry for QR model 2 version n (1..40),
// computing raw-data-module count and the block split via the same
// formulas nayuki's getNumRawDataModules/addEccAndInterleave use.
func ModelTwoVersion(n int) (*Version, error) {
	if n < 1 || n > 40 {
		return nil, fmt.Errorf("qrversion: version %d out of range [1,40]", n)
	}
	dim := 4*n + 17
	raw := numRawDataModules(n)
	total := raw / 8

	v := &Version{Number: n, Dimension: dim, TotalCodewords: total}
	for lvl := 0; lvl < 4; lvl++ {
		ecPerBlock := eccCodewordsPerBlock[lvl][n]
		numBlocks := numErrorCorrectionBlocks[lvl][n]
		numShort := numBlocks - (total % numBlocks)
		shortBlockLen := total / numBlocks
		info := ECBlockInfo{
			NumBlocks1:    numShort,
			DataPerBlock1: shortBlockLen - ecPerBlock,
			NumBlocks2:    numBlocks - numShort,
			ECPerBlock:    ecPerBlock,
		}
		v.ecBlocks[lvl] = info
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// validate checks spec.md's invariant: sum(dataCW+ecCW) per block equals
// TotalCodewords, for every error-correction level.
func (v *Version) validate() error {
	for lvl := 0; lvl < 4; lvl++ {
		b := v.ecBlocks[lvl]
		sum := b.NumBlocks1*(b.DataPerBlock1+b.ECPerBlock) + b.NumBlocks2*(b.DataPerBlock1+1+b.ECPerBlock)
		if sum != v.TotalCodewords {
			return fmt.Errorf("qrversion: version %d level %d: block layout sums to %d codewords, want %d",
				v.Number, lvl, sum, v.TotalCodewords)
		}
	}
	return nil
}

// ECBlocksFor returns the block layout for the given level.
func (v *Version) ECBlocksFor(level ECLevel) ECBlockInfo { return v.ecBlocks[int(level)] }

// DataCodewords returns the number of data (non-EC) codewords at level.
func (v *Version) DataCodewords(level ECLevel) int {
	b := v.ecBlocks[int(level)]
	return b.NumBlocks1*b.DataPerBlock1 + b.NumBlocks2*(b.DataPerBlock1+1)
}

// numRawDataModules ports nayuki's getNumRawDataModules.
func numRawDataModules(ver int) int {
	v := ver
	result := (16*v+128)*v + 64
	if v >= 2 {
		numalign := v/7 + 2
		result -= (25*numalign-10)*numalign - 55
		if v >= 7 {
			result -= 36
		}
	}
	return result
}

// AlignmentPatternCenters ports nayuki's getAlignmentPatternPositions:
// an ascending list of module coordinates used on both axes (excluding
// the three finder corners).
func (v *Version) AlignmentPatternCenters() []int {
	if v.Number == 1 {
		return nil
	}
	ver := v.Number
	numalign := ver/7 + 2
	var step int
	if ver == 32 {
		step = 26
	} else {
		step = (ver*4+numalign*2+1)/(numalign*2-2)*2
	}
	result := make([]int, numalign)
	for i := 0; i < numalign-1; i++ {
		result[i] = v.Dimension - 7 - i*step
	}
	result[numalign-1] = 6
	// reverse into ascending order
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// DimensionToVersionModel2 recovers the version number from a model-2
// dimension with no redundancy (spec.md section 4.6): version =
// (dimension-17)/4, valid for dimension in [21,41] i.e. version [1,6].
func DimensionToVersionModel2(dimension int) (int, bool) {
	if dimension < 21 || dimension > 41 || (dimension-17)%4 != 0 {
		return 0, false
	}
	return (dimension - 17) / 4, true
}
