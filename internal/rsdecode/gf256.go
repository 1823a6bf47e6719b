// Package rsdecode implements QR's Reed-Solomon error correction over
// GF(2^8) (spec.md section 4.9): syndrome computation, Berlekamp-Massey,
// Chien search, and Forney's algorithm. The field setup (primitive
// polynomial 0x11D = x^8+x^4+x^3+x^2+1, generator element alpha=2, log/exp
// tables) is ported from AshokShau-qrcode/reedsolomon.go's gfMul/gfDiv
// field arithmetic, the only Reed-Solomon implementation in the pack;
// that file only encodes (computes the EC remainder), so the correction
// algorithm itself (syndromes, error locator, Chien search, Forney) is
// original code implementing the steps spec.md section 4.9 enumerates.
package rsdecode

// expTable[i] = alpha^i for i in [0,509) (double length avoids a modulo
// in multiplication); logTable[v] = i such that alpha^i = v, for v != 0.
var expTable [509]int
var logTable [256]int

const primitivePoly = 0x11D

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		expTable[i] = x
		if x != 0 {
			logTable[x] = i
		}
		x <<= 1
		if x >= 256 {
			x ^= primitivePoly
		}
	}
	for i := 255; i < 509; i++ {
		expTable[i] = expTable[i-255]
	}
}

func gfMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[logTable[a]+logTable[b]]
}

func gfDiv(a, b int) int {
	if b == 0 {
		panic("rsdecode: division by zero")
	}
	if a == 0 {
		return 0
	}
	return expTable[logTable[a]+255-logTable[b]]
}

func gfExp(i int) int {
	for i < 0 {
		i += 255
	}
	return expTable[i%255]
}

func gfInverse(a int) int {
	if a == 0 {
		panic("rsdecode: inverse of zero")
	}
	return expTable[255-logTable[a]]
}

// gfPoly is a polynomial over GF(256), coefficients in order from the
// highest-degree term to the constant term (matches the codeword's
// natural byte order: data[0] is the highest-order coefficient).
type gfPoly []int

func (p gfPoly) degree() int { return len(p) - 1 }

func (p gfPoly) isZero() bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

// evalAt evaluates the polynomial at x using Horner's method.
func (p gfPoly) evalAt(x int) int {
	if x == 0 {
		return p[len(p)-1]
	}
	result := p[0]
	for i := 1; i < len(p); i++ {
		result = gfMul(result, x) ^ p[i]
	}
	return result
}

func gfPolyMul(a, b gfPoly) gfPoly {
	out := make(gfPoly, len(a)+len(b)-1)
	for i, ca := range a {
		if ca == 0 {
			continue
		}
		for j, cb := range b {
			out[i+j] ^= gfMul(ca, cb)
		}
	}
	return out
}

func gfPolyAdd(a, b gfPoly) gfPoly {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(gfPoly, n)
	for i := 0; i < len(a); i++ {
		out[n-len(a)+i] ^= a[i]
	}
	for i := 0; i < len(b); i++ {
		out[n-len(b)+i] ^= b[i]
	}
	return out
}

// scale multiplies every coefficient by a scalar.
func (p gfPoly) scale(s int) gfPoly {
	out := make(gfPoly, len(p))
	for i, c := range p {
		out[i] = gfMul(c, s)
	}
	return out
}
