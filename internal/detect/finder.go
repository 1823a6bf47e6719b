// Package detect implements C3 (FinderLocator) and C4 (AlignmentLocator):
// locating the three 1:1:3:1:1 finder patterns and the 1:1:1:1:1
// alignment patterns in a binarized image. Neither algorithm has a
// direct counterpart anywhere in the retrieved pack (none of the
// example repos detect patterns in a captured image; they only draw
// them when encoding), so this package implements spec.md section
// 4.2-4.3's algorithm description directly, using the same run-length
// scanning and cross-check structure described there. It is organized
// the way qrversion.FunctionModuleMask's small verification helpers are
// (plain functions operating on a *bitmatrix.BitMatrix, no hidden
// state), matching the pack's general style of small composable
// geometry helpers over a shared bit-matrix type.
//
// FindFinderPatterns returns a plain []Finder rather than a lazy
// generator: SelectBestTriple needs every candidate in hand to score
// triples against each other, so nothing is saved by suspending between
// candidates, and a single decode call has no suspension points to begin
// with (spec.md section 5).
package detect

import (
	"math"
	"sort"

	"github.com/barcodelab/qrdecode/internal/bitmatrix"
)

// Finder is a candidate finder-pattern center with an observation count.
type Finder struct {
	X, Y       float64
	ModuleSize float64
	Count      int
}

// aboutEquals reports whether two finder observations are close enough
// to be the same physical pattern (spec.md section 3's FinderPattern
// definition): centers within moduleSize pixels, module sizes agreeing
// to within about one pixel.
func aboutEquals(a, b Finder) bool {
	avgSize := (a.ModuleSize + b.ModuleSize) / 2
	if avgSize <= 0 {
		avgSize = 1
	}
	dx := a.X - b.X
	dy := a.Y - b.Y
	dist2 := dx*dx + dy*dy
	if dist2 > avgSize*avgSize {
		return false
	}
	sizeDiff := a.ModuleSize - b.ModuleSize
	if sizeDiff < 0 {
		sizeDiff = -sizeDiff
	}
	return sizeDiff <= 1.0
}

func combine(a, b Finder) Finder {
	totalCount := a.Count + b.Count
	return Finder{
		X:          (a.X*float64(a.Count) + b.X*float64(b.Count)) / float64(totalCount),
		Y:          (a.Y*float64(a.Count) + b.Y*float64(b.Count)) / float64(totalCount),
		ModuleSize: (a.ModuleSize*float64(a.Count) + b.ModuleSize*float64(b.Count)) / float64(totalCount),
		Count:      totalCount,
	}
}

// ratiosMatch reports whether 5 consecutive run lengths approximate
// QR's 1:1:3:1:1 finder ratio within a tolerance proportional to the
// estimated module size.
func ratiosMatch(runs [5]int) (moduleSize float64, ok bool) {
	total := 0
	for _, r := range runs {
		if r == 0 {
			return 0, false
		}
		total += r
	}
	unit := float64(total) / 7.0
	tolerance := unit / 2
	check := func(run int, want float64) bool {
		d := float64(run) - want*unit
		if d < 0 {
			d = -d
		}
		return d <= want*tolerance || d <= tolerance
	}
	if !check(runs[0], 1) || !check(runs[1], 1) || !check(runs[2], 3) || !check(runs[3], 1) || !check(runs[4], 1) {
		return 0, false
	}
	return unit, true
}

// crossCheckVertical verifies a 1:1:3:1:1 vertical run through (centerX,
// centerY) and returns the refined vertical center, or ok=false.
func crossCheckVertical(bits *bitmatrix.BitMatrix, centerX, centerY int) (float64, bool) {
	height := bits.Height()
	runs, startY, ok := scanRuns(height, centerY, func(y int) bool { return bits.Get(centerX, y) })
	if !ok {
		return 0, false
	}
	_, ok = ratiosMatch(runs)
	if !ok {
		return 0, false
	}
	center := float64(startY) + float64(runs[0]+runs[1])+float64(runs[2])/2
	return center, true
}

// crossCheckHorizontal mirrors crossCheckVertical along a row.
func crossCheckHorizontal(bits *bitmatrix.BitMatrix, centerX, centerY int) (float64, bool) {
	width := bits.Width()
	runs, startX, ok := scanRuns(width, centerX, func(x int) bool { return bits.Get(x, centerY) })
	if !ok {
		return 0, false
	}
	_, ok = ratiosMatch(runs)
	if !ok {
		return 0, false
	}
	center := float64(startX) + float64(runs[0]+runs[1])+float64(runs[2])/2
	return center, true
}

// crossCheckDiagonal rejects candidates whose diagonal run ratios are
// wildly inconsistent with a square finder, catching noise that
// satisfies the horizontal/vertical checks by coincidence.
func crossCheckDiagonal(bits *bitmatrix.BitMatrix, centerX, centerY int, moduleSize float64) bool {
	width, height := bits.Width(), bits.Height()
	maxDim := width
	if height > maxDim {
		maxDim = height
	}
	get := func(x, y int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		return bits.Get(x, y)
	}
	runs, ok := diagonalRuns(centerX, centerY, maxDim, get)
	if !ok {
		return false
	}
	_, ok = ratiosMatch(runs)
	return ok
}

// scanRuns walks outward from center along one axis (via get(pos))
// collecting the 5 alternating run lengths centered on a black run,
// matching the horizontal-scan state machine in spec.md section 4.2.
func scanRuns(limit, center int, get func(int) bool) (runs [5]int, start int, ok bool) {
	if center < 0 || center >= limit || !get(center) {
		return runs, 0, false
	}
	pos := center
	for pos > 0 && get(pos-1) {
		pos--
	}
	midStart := pos
	// walk left through white, white, black beyond the center black run
	p := midStart
	white1End := p
	for p > 0 && !get(p-1) {
		p--
	}
	white1Start := p
	black1End := white1Start
	for p > 0 && get(p-1) {
		p--
	}
	black1Start := p

	pos2 := center
	for pos2 < limit-1 && get(pos2+1) {
		pos2++
	}
	midEnd := pos2
	p2 := midEnd
	white2Start := p2
	for p2 < limit-1 && !get(p2+1) {
		p2++
	}
	white2End := p2
	black2Start := white2End
	for p2 < limit-1 && get(p2+1) {
		p2++
	}
	black2End := p2

	if black1Start == black1End && black1Start == 0 {
		return runs, 0, false
	}

	runs[0] = black1End - black1Start
	runs[1] = white1End - white1Start
	runs[2] = midEnd - midStart + 1
	runs[3] = white2End - white2Start
	runs[4] = black2End - black2Start

	if runs[0] == 0 || runs[3] == 0 || runs[4] == 0 {
		return runs, 0, false
	}
	return runs, black1Start, true
}

func diagonalRuns(centerX, centerY, maxSteps int, get func(x, y int) bool) (runs [5]int, ok bool) {
	if !get(centerX, centerY) {
		return runs, false
	}
	// Count black run along the down-right/up-left diagonal.
	i := 0
	for i < maxSteps && get(centerX-i-1, centerY-i-1) {
		i++
	}
	j := 0
	for j < maxSteps && get(centerX+j+1, centerY+j+1) {
		j++
	}
	runs[2] = i + j + 1

	k := i + 1
	white1 := 0
	for k < maxSteps && !get(centerX-k-1, centerY-k-1) {
		white1++
		k++
	}
	black1 := 0
	for k < maxSteps && get(centerX-k-1, centerY-k-1) {
		black1++
		k++
	}

	m := j + 1
	white2 := 0
	for m < maxSteps && !get(centerX+m+1, centerY+m+1) {
		white2++
		m++
	}
	black2 := 0
	for m < maxSteps && get(centerX+m+1, centerY+m+1) {
		black2++
		m++
	}

	runs[1] = white1
	runs[0] = black1
	runs[3] = white2
	runs[4] = black2
	if black1 == 0 || black2 == 0 || white1 == 0 || white2 == 0 {
		return runs, false
	}
	return runs, true
}

// FindFinderPatterns scans bits row by row for 1:1:3:1:1 run patterns,
// verifies each candidate with vertical, horizontal, and diagonal
// cross-checks, and merges near-duplicate observations.
func FindFinderPatterns(bits *bitmatrix.BitMatrix) []Finder {
	width, height := bits.Width(), bits.Height()
	var found []Finder

	for y := 0; y < height; y++ {
		var runs [5]int
		runIdx := 0
		lastBit := false
		runStart := 0

		flush := func(endX int) {
			if runIdx < 4 {
				return
			}
			moduleSize, ok := ratiosMatch(runs)
			if !ok {
				return
			}
			centerX := float64(endX) - float64(runs[4]) - float64(runs[3]) - float64(runs[2])/2
			cx := int(centerX)
			vCenter, ok := crossCheckVertical(bits, cx, y)
			if !ok {
				return
			}
			vy := int(vCenter + 0.5)
			hCenter, ok := crossCheckHorizontal(bits, cx, vy)
			if !ok {
				return
			}
			if !crossCheckDiagonal(bits, int(hCenter+0.5), vy, moduleSize) {
				return
			}
			cand := Finder{X: hCenter, Y: vCenter, ModuleSize: moduleSize, Count: 1}
			merged := false
			for i, f := range found {
				if aboutEquals(f, cand) {
					found[i] = combine(f, cand)
					merged = true
					break
				}
			}
			if !merged {
				found = append(found, cand)
			}
		}

		for x := 0; x < width; x++ {
			bit := bits.Get(x, y)
			if x == 0 {
				lastBit = bit
				runStart = 0
				runs = [5]int{}
				runIdx = 0
			}
			if bit == lastBit {
				continue
			}
			length := x - runStart
			if runIdx < 5 {
				runs[runIdx] = length
			} else {
				copy(runs[0:], runs[1:])
				runs[4] = length
			}
			if runIdx < 5 {
				runIdx++
			}
			if lastBit { // a black run just closed
				flush(x)
			}
			runStart = x
			lastBit = bit
		}
	}

	return found
}

// SelectBestTriple scores every combination of three confirmed finder
// candidates (those observed at least twice, or every candidate when
// fewer than three are confirmed) for pairwise module-size agreement and right-angle
// orientation, returning the highest-scoring (topLeft, topRight,
// bottomLeft) triple.
func SelectBestTriple(candidates []Finder) (topLeft, topRight, bottomLeft Finder, ok bool) {
	var confirmed []Finder
	for _, f := range candidates {
		if f.Count >= 2 {
			confirmed = append(confirmed, f)
		}
	}
	if len(confirmed) < 3 {
		confirmed = candidates
	}
	if len(confirmed) < 3 {
		return Finder{}, Finder{}, Finder{}, false
	}

	type triple struct {
		a, b, c Finder
		score   float64
	}
	var best *triple
	n := len(confirmed)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				tl, tr, bl, score, good := scoreTriple(confirmed[i], confirmed[j], confirmed[k])
				if !good {
					continue
				}
				if best == nil || score < best.score {
					best = &triple{tl, tr, bl, score}
				}
			}
		}
	}
	if best == nil {
		return Finder{}, Finder{}, Finder{}, false
	}
	return best.a, best.b, best.c, true
}

// scoreTriple assigns topLeft/topRight/bottomLeft roles to three
// finders based on which pairwise distance is longest (the diagonal,
// topRight-bottomLeft) and scores module-size agreement plus deviation
// from a right angle at topLeft. Lower score is better.
func scoreTriple(a, b, c Finder) (topLeft, topRight, bottomLeft Finder, score float64, ok bool) {
	pts := [3]Finder{a, b, c}
	dist := func(p, q Finder) float64 {
		dx, dy := p.X-q.X, p.Y-q.Y
		return dx*dx + dy*dy
	}
	d01, d02, d12 := dist(pts[0], pts[1]), dist(pts[0], pts[2]), dist(pts[1], pts[2])
	// The pair with the greatest distance is the diagonal; the
	// remaining point is topLeft.
	tlIdx := 2
	if d01 >= d02 && d01 >= d12 {
		tlIdx = 2
	} else if d02 >= d01 && d02 >= d12 {
		tlIdx = 1
	} else {
		tlIdx = 0
	}
	tl := pts[tlIdx]
	others := make([]Finder, 0, 2)
	for i, p := range pts {
		if i != tlIdx {
			others = append(others, p)
		}
	}
	// Cross product sign of (o1-tl) x (o2-tl) determines which other
	// point is topRight vs bottomLeft for a right-handed image axis.
	o1, o2 := others[0], others[1]
	cross := (o1.X-tl.X)*(o2.Y-tl.Y) - (o1.Y-tl.Y)*(o2.X-tl.X)
	if cross < 0 {
		o1, o2 = o2, o1
	}
	tr, bl := o1, o2

	avgSize := (tl.ModuleSize + tr.ModuleSize + bl.ModuleSize) / 3
	if avgSize <= 0 {
		return Finder{}, Finder{}, Finder{}, 0, false
	}
	sizeVariance := absF(tl.ModuleSize-avgSize) + absF(tr.ModuleSize-avgSize) + absF(bl.ModuleSize-avgSize)

	v1x, v1y := tr.X-tl.X, tr.Y-tl.Y
	v2x, v2y := bl.X-tl.X, bl.Y-tl.Y
	dot := v1x*v2x + v1y*v2y
	len1 := math.Sqrt(v1x*v1x + v1y*v1y)
	len2 := math.Sqrt(v2x*v2x + v2y*v2y)
	if len1 == 0 || len2 == 0 {
		return Finder{}, Finder{}, Finder{}, 0, false
	}
	cosAngle := absF(dot / (len1 * len2))

	score = sizeVariance + cosAngle*avgSize
	return tl, tr, bl, score, true
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Triple is one resolved (topLeft, topRight, bottomLeft) finder
// assignment.
type Triple struct {
	TopLeft, TopRight, BottomLeft Finder
}

// SelectTriples repeatedly extracts the best-scoring triple via
// SelectBestTriple and removes its three finders from consideration, so
// a crowded image with several physically distinct symbols yields one
// triple per symbol instead of only the single global best (spec.md
// section 4.2's locate() contract: return the best-scoring triple plus
// every other confirmed one). max caps the number of triples returned;
// max<=0 means unlimited.
func SelectTriples(candidates []Finder, max int) []Triple {
	remaining := append([]Finder(nil), candidates...)
	var triples []Triple
	for max <= 0 || len(triples) < max {
		tl, tr, bl, ok := SelectBestTriple(remaining)
		if !ok {
			break
		}
		triples = append(triples, Triple{tl, tr, bl})
		remaining = withoutFinders(remaining, tl, tr, bl)
	}
	return triples
}

func withoutFinders(finders []Finder, used ...Finder) []Finder {
	out := make([]Finder, 0, len(finders))
	for _, f := range finders {
		skip := false
		for _, u := range used {
			if f == u {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, f)
		}
	}
	return out
}

// SortByRasterOrder sorts finders in deterministic raster-scan order
// (spec.md section 5's ordering guarantee).
func SortByRasterOrder(finders []Finder) {
	sort.Slice(finders, func(i, j int) bool {
		if finders[i].Y != finders[j].Y {
			return finders[i].Y < finders[j].Y
		}
		return finders[i].X < finders[j].X
	})
}
