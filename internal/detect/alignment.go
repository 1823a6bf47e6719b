package detect

// FindAlignmentPattern implements C4: given an estimated center for a
// QR alignment pattern (derived from provisional perspective and the
// tentative version), searches an expanding square window for a
// 1:1:1:1:1 dark-light-dark-light-dark run pattern and returns its
// refined center.
func FindAlignmentPattern(bits interface {
	Width() int
	Height() int
	Get(x, y int) bool
}, estX, estY float64, searchRadius int) (x, y float64, ok bool) {
	width, height := bits.Width(), bits.Height()
	cx, cy := int(estX+0.5), int(estY+0.5)

	for r := 0; r <= searchRadius; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				// Only examine the expanding ring's border to avoid
				// re-scanning the interior at every radius.
				if r > 0 && absInt(dx) != r && absInt(dy) != r {
					continue
				}
				px, py := cx+dx, cy+dy
				if px < 0 || py < 0 || px >= width || py >= height {
					continue
				}
				if !bits.Get(px, py) {
					continue
				}
				cX, cY, ok := verifyAlignmentCenter(bits, px, py, width, height)
				if ok {
					return cX, cY, true
				}
			}
		}
	}
	return 0, 0, false
}

// verifyAlignmentCenter checks for a 1:1:1:1:1 run both horizontally and
// vertically through (px,py) and returns the averaged sub-pixel center.
func verifyAlignmentCenter(bits interface {
	Get(x, y int) bool
}, px, py, width, height int) (float64, float64, bool) {
	hRuns, hStart, ok := scanRuns(width, px, func(x int) bool { return bits.Get(x, py) })
	if !ok || !alignmentRatios(hRuns) {
		return 0, 0, false
	}
	vRuns, vStart, ok := scanRuns(height, py, func(y int) bool { return bits.Get(px, y) })
	if !ok || !alignmentRatios(vRuns) {
		return 0, 0, false
	}
	cx := float64(hStart) + float64(hRuns[0]+hRuns[1])+float64(hRuns[2])/2
	cy := float64(vStart) + float64(vRuns[0]+vRuns[1])+float64(vRuns[2])/2
	return cx, cy, true
}

// alignmentRatios checks that all 5 scanned runs approximate equal
// width: a QR alignment pattern is a 5x5 block (dark border, light
// ring, single dark center module), so a scan line through its center
// sees dark:light:dark:light:dark in a 1:1:1:1:1 ratio.
func alignmentRatios(runs [5]int) bool {
	total := 0
	for _, r := range runs {
		if r == 0 {
			return false
		}
		total += r
	}
	unit := float64(total) / 5.0
	tol := unit/2 + 1
	for _, r := range runs {
		d := float64(r) - unit
		if d < 0 {
			d = -d
		}
		if d > tol {
			return false
		}
	}
	return true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
