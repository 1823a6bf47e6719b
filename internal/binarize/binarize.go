// Package binarize implements C2: converting a grayscale luminance
// plane into a dense bit image. The local-adaptive block-threshold
// algorithm (8x8 blocks, flat-region inheritance, 5x5 smoothing) is
// spec.md section 4.1's literal description; the package structure
// (a small set of named modes behind one entry point, never failing,
// falling back to a best-effort result on degenerate input) follows
// deepteams-webp/webp.go's Decode/DecodeConfig split between a
// best-effort and a strict entry point.
package binarize

import (
	"github.com/barcodelab/qrdecode/internal/bitmatrix"
	"github.com/barcodelab/qrdecode/internal/luminance"
)

// Mode selects the thresholding strategy.
type Mode int

const (
	LocalAverage Mode = iota
	GlobalHistogram
	FixedThreshold
	BoolCast
)

const blockSize = 8
const minDynamicRange = 24

// Binarize converts src to a dense BitMatrix using the selected mode. A
// bit is set where the source pixel is judged "dark". Never fails: a
// completely flat or degenerate image still produces a matrix, its flat
// blocks inheriting a neighbouring block's threshold and the first block
// falling back to its own mean.
func Binarize(src *luminance.Source, mode Mode, fixedThreshold byte) *bitmatrix.BitMatrix {
	switch mode {
	case BoolCast:
		return boolCast(src)
	case FixedThreshold:
		return thresholdGlobal(src, fixedThreshold)
	case GlobalHistogram:
		return thresholdGlobal(src, otsuThreshold(src))
	default:
		return localAverage(src)
	}
}

func boolCast(src *luminance.Source) *bitmatrix.BitMatrix {
	out := bitmatrix.New(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if src.At(x, y) != 0 {
				out.Set(x, y)
			}
		}
	}
	return out
}

func thresholdGlobal(src *luminance.Source, threshold byte) *bitmatrix.BitMatrix {
	out := bitmatrix.New(src.Width, src.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			if src.At(x, y) < threshold {
				out.Set(x, y)
			}
		}
	}
	return out
}

// otsuThreshold picks the threshold maximizing between-class variance
// of a 256-bin luminance histogram (the "global-histogram (Otsu-like)"
// mode spec.md section 4.1 names). It returns the first level above the
// dark class, so thresholdGlobal's strict comparison sets every pixel of
// the dark class.
func otsuThreshold(src *luminance.Source) byte {
	var hist [256]int
	total := src.Width * src.Height
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			hist[src.At(x, y)]++
		}
	}
	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i * c)
	}

	var sumB, wB float64
	best := 128
	bestVar := -1.0
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		betweenVar := wB * wF * (mB - mF) * (mB - mF)
		if betweenVar > bestVar {
			bestVar = betweenVar
			best = t + 1
		}
	}
	return byte(best)
}

// localAverage implements the block-threshold algorithm: per-8x8-block
// mean, flat-region inheritance when dynamic range < 24, 5x5 smoothing
// of block thresholds, then per-pixel comparison.
func localAverage(src *luminance.Source) *bitmatrix.BitMatrix {
	width, height := src.Width, src.Height
	out := bitmatrix.New(width, height)
	if width == 0 || height == 0 {
		return out
	}

	blocksX := (width + blockSize - 1) / blockSize
	blocksY := (height + blockSize - 1) / blockSize

	blockMean := make([][]int, blocksY)
	blockMin := make([][]int, blocksY)
	blockMax := make([][]int, blocksY)
	for by := 0; by < blocksY; by++ {
		blockMean[by] = make([]int, blocksX)
		blockMin[by] = make([]int, blocksX)
		blockMax[by] = make([]int, blocksX)
		for bx := 0; bx < blocksX; bx++ {
			sum, min, max, n := 0, 255, 0, 0
			for y := by * blockSize; y < height && y < (by+1)*blockSize; y++ {
				for x := bx * blockSize; x < width && x < (bx+1)*blockSize; x++ {
					v := int(src.At(x, y))
					sum += v
					n++
					if v < min {
						min = v
					}
					if v > max {
						max = v
					}
				}
			}
			if n == 0 {
				n = 1
			}
			blockMean[by][bx] = sum / n
			blockMin[by][bx] = min
			blockMax[by][bx] = max
		}
	}

	blockThreshold := make([][]int, blocksY)
	for by := 0; by < blocksY; by++ {
		blockThreshold[by] = make([]int, blocksX)
		for bx := 0; bx < blocksX; bx++ {
			dynamicRange := blockMax[by][bx] - blockMin[by][bx]
			if dynamicRange < minDynamicRange {
				// Flat region: inherit the nearest already-computed
				// neighbor's threshold rather than the block's own
				// (unreliable) mean.
				if bx > 0 {
					blockThreshold[by][bx] = blockThreshold[by][bx-1]
				} else if by > 0 {
					blockThreshold[by][bx] = blockThreshold[by-1][bx]
				} else {
					blockThreshold[by][bx] = blockMean[by][bx]
				}
				continue
			}
			t := blockMean[by][bx] - 1
			if t < blockMin[by][bx]+1 {
				t = blockMin[by][bx] + 1
			}
			blockThreshold[by][bx] = t
		}
	}

	for y := 0; y < height; y++ {
		by := y / blockSize
		for x := 0; x < width; x++ {
			bx := x / blockSize
			threshold := smoothedThreshold(blockThreshold, bx, by, blocksX, blocksY)
			if int(src.At(x, y)) < threshold {
				out.Set(x, y)
			}
		}
	}
	return out
}

// smoothedThreshold averages the 5x5 neighborhood of block thresholds
// centered at (bx,by), clamped to the block grid's edges.
func smoothedThreshold(blockThreshold [][]int, bx, by, blocksX, blocksY int) int {
	sum, n := 0, 0
	for dy := -2; dy <= 2; dy++ {
		ny := by + dy
		if ny < 0 || ny >= blocksY {
			continue
		}
		for dx := -2; dx <= 2; dx++ {
			nx := bx + dx
			if nx < 0 || nx >= blocksX {
				continue
			}
			sum += blockThreshold[ny][nx]
			n++
		}
	}
	if n == 0 {
		return 128
	}
	return sum / n
}
