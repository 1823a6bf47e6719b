// Package sample implements C5: building the 3x3 perspective transform
// from four reference points and sampling a logical N×N module grid out
// of the binarized image. The unit-square-to-quadrilateral
// construction is the classical projective-mapping algorithm spec.md
// section 4.4 describes (solve the 8-parameter perspective for four
// point correspondences); no file in the retrieved pack implements
// image-space perspective sampling, so this is original code directly
// implementing that description, following the same plain-struct,
// no-hidden-state style as internal/detect.
package sample

import "fmt"

// Transform is a 3x3 projective transform in row-major form, applied to
// homogeneous coordinates (x, y, 1).
type Transform struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// Apply maps (x,y) through the transform, dividing out the homogeneous
// coordinate.
func (t Transform) Apply(x, y float64) (float64, float64) {
	denom := t.a13*x + t.a23*y + t.a33
	px := (t.a11*x + t.a21*y + t.a31) / denom
	py := (t.a12*x + t.a22*y + t.a32) / denom
	return px, py
}

// squareToQuadrilateral builds the transform mapping the unit square
// (0,0),(1,0),(1,1),(0,1) onto the given quadrilateral corners, in the
// same order.
func squareToQuadrilateral(x0, y0, x1, y1, x2, y2, x3, y3 float64) Transform {
	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		return Transform{
			a11: x1 - x0, a12: y1 - y0, a13: 0,
			a21: x2 - x1, a22: y2 - y1, a23: 0,
			a31: x0, a32: y0, a33: 1,
		}
	}
	dx1 := x1 - x2
	dx2 := x3 - x2
	dy1 := y1 - y2
	dy2 := y3 - y2
	denom := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / denom
	a23 := (dx1*dy3 - dx3*dy1) / denom
	return Transform{
		a11: x1 - x0 + a13*x1, a12: y1 - y0 + a13*y1, a13: a13,
		a21: x3 - x0 + a23*x3, a22: y3 - y0 + a23*y3, a23: a23,
		a31: x0, a32: y0, a33: 1,
	}
}

// invert computes the matrix inverse of t (also a valid projective
// transform, since Transform is always invertible for non-degenerate
// quadrilaterals).
func (t Transform) invert() Transform {
	det := t.a11*(t.a22*t.a33-t.a23*t.a32) -
		t.a12*(t.a21*t.a33-t.a23*t.a31) +
		t.a13*(t.a21*t.a32-t.a22*t.a31)
	id := 1 / det
	return Transform{
		a11: (t.a22*t.a33 - t.a23*t.a32) * id,
		a12: (t.a13*t.a32 - t.a12*t.a33) * id,
		a13: (t.a12*t.a23 - t.a13*t.a22) * id,
		a21: (t.a23*t.a31 - t.a21*t.a33) * id,
		a22: (t.a11*t.a33 - t.a13*t.a31) * id,
		a23: (t.a13*t.a21 - t.a11*t.a23) * id,
		a31: (t.a21*t.a32 - t.a22*t.a31) * id,
		a32: (t.a12*t.a31 - t.a11*t.a32) * id,
		a33: (t.a11*t.a22 - t.a12*t.a21) * id,
	}
}

func (a Transform) times(b Transform) Transform {
	return Transform{
		a11: a.a11*b.a11 + a.a21*b.a12 + a.a31*b.a13,
		a12: a.a12*b.a11 + a.a22*b.a12 + a.a32*b.a13,
		a13: a.a13*b.a11 + a.a23*b.a12 + a.a33*b.a13,
		a21: a.a11*b.a21 + a.a21*b.a22 + a.a31*b.a23,
		a22: a.a12*b.a21 + a.a22*b.a22 + a.a32*b.a23,
		a23: a.a13*b.a21 + a.a23*b.a22 + a.a33*b.a23,
		a31: a.a11*b.a31 + a.a21*b.a32 + a.a31*b.a33,
		a32: a.a12*b.a31 + a.a22*b.a32 + a.a32*b.a33,
		a33: a.a13*b.a31 + a.a23*b.a32 + a.a33*b.a33,
	}
}

// quadrilateralToQuadrilateral builds the transform mapping one
// quadrilateral onto another, used to go from the N×N module grid
// directly to image-space corners.
func quadrilateralToQuadrilateral(
	x0, y0, x1, y1, x2, y2, x3, y3 float64,
	x0p, y0p, x1p, y1p, x2p, y2p, x3p, y3p float64,
) Transform {
	sToQ := squareToQuadrilateral(x0, y0, x1, y1, x2, y2, x3, y3)
	qToS := sToQ.invert()
	sToQp := squareToQuadrilateral(x0p, y0p, x1p, y1p, x2p, y2p, x3p, y3p)
	return sToQp.times(qToS)
}

// BuildTransform constructs the module-grid-to-image transform from the
// four module-space unit-square corners (0,0),(N,0),(N,N),(0,N) to the
// four image-space reference points, in (topLeft, topRight,
// bottomRight, bottomLeft) order. Used when no alignment pattern was
// found and bottomRight is only an extrapolated corner.
func BuildTransform(dimension int, topLeft, topRight, bottomRight, bottomLeft [2]float64) Transform {
	dim := float64(dimension)
	return BuildTransformGeneral(
		[4][2]float64{{0, 0}, {dim, 0}, {dim, dim}, {0, dim}},
		[4][2]float64{topLeft, topRight, bottomRight, bottomLeft},
	)
}

// BuildTransformGeneral maps four arbitrary module-space correspondence
// points to four image-space points, in matching order. Used when the
// fourth point is a refined alignment-pattern center rather than the
// true bottom-right corner (spec.md section 4.3/4.4): the alignment
// pattern's module coordinates aren't (N,N), so the quadrilateral
// correspondence must reflect that instead of assuming a full square.
func BuildTransformGeneral(src, dst [4][2]float64) Transform {
	return quadrilateralToQuadrilateral(
		src[0][0], src[0][1], src[1][0], src[1][1], src[2][0], src[2][1], src[3][0], src[3][1],
		dst[0][0], dst[0][1], dst[1][0], dst[1][1], dst[2][0], dst[2][1], dst[3][0], dst[3][1],
	)
}

// ErrOutOfBounds is returned when a module center maps outside the
// source image.
var ErrOutOfBounds = fmt.Errorf("sample: module center maps outside the image")
