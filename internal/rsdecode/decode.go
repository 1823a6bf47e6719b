package rsdecode

import "errors"

// ErrUncorrectable is returned when Correct cannot find a consistent
// error-locator polynomial: Berlekamp-Massey's locator has degree
// exceeding the number of roots Chien search finds, or a computed error
// position falls outside the codeword (spec.md section 4.9's failure
// modes, reported by the caller as a Checksum error).
var ErrUncorrectable = errors.New("rsdecode: block is uncorrectable")

// Correct applies Reed-Solomon error correction to codewords in place.
// numECCodewords must be even; up to numECCodewords/2 byte errors are
// corrected. It returns the number of corrected byte errors, or
// ErrUncorrectable if the block could not be corrected — per spec.md's
// property 5, an uncorrectable block is never silently altered into a
// different message: codewords are left unmodified when Correct returns
// ErrUncorrectable.
func Correct(codewords []int, numECCodewords int) (int, error) {
	poly := gfPoly(codewords)
	twoT := numECCodewords

	synd := computeSyndromes(poly, twoT)
	clean := true
	for _, s := range synd {
		if s != 0 {
			clean = false
			break
		}
	}
	if clean {
		return 0, nil
	}

	lambda := berlekampMassey(synd, twoT)
	errCount := len(lambda) - 1
	if errCount <= 0 || errCount > twoT/2 {
		return 0, ErrUncorrectable
	}

	locations, ok := chienSearch(lambda, len(codewords))
	if !ok || len(locations) != errCount {
		return 0, ErrUncorrectable
	}

	omega := forneyOmega(synd, lambda, twoT)
	lambdaPrime := formalDerivative(lambda)

	corrections := make([]int, errCount)
	positions := make([]int, errCount)
	for idx, l := range locations {
		invXk := gfExp(-l)
		denom := evalAscending(lambdaPrime, invXk)
		if denom == 0 {
			return 0, ErrUncorrectable
		}
		xk := gfExp(l)
		magnitude := gfMul(xk, gfDiv(evalAscending(omega, invXk), denom))
		pos := len(codewords) - 1 - l
		if pos < 0 || pos >= len(codewords) {
			return 0, ErrUncorrectable
		}
		positions[idx] = pos
		corrections[idx] = magnitude
	}

	for i, pos := range positions {
		codewords[pos] ^= corrections[i]
	}

	// Verify: corrected codeword must have all-zero syndromes.
	verifySynd := computeSyndromes(gfPoly(codewords), twoT)
	for _, s := range verifySynd {
		if s != 0 {
			for i, pos := range positions {
				codewords[pos] ^= corrections[i]
			}
			return 0, ErrUncorrectable
		}
	}

	return errCount, nil
}

// computeSyndromes returns S[i] = poly.evalAt(alpha^i) for i in
// [0,twoT), treating the generator's roots as alpha^0..alpha^(twoT-1) to
// match the encoder convention used throughout the pack (nayuki's
// reedSolomonComputeDivisor, AshokShau's GenerateGeneratorPoly).
func computeSyndromes(poly gfPoly, twoT int) []int {
	synd := make([]int, twoT)
	for i := 0; i < twoT; i++ {
		synd[i] = poly.evalAt(gfExp(i))
	}
	return synd
}

// berlekampMassey finds the shortest linear feedback shift register
// (the error-locator polynomial Lambda, ascending coefficient order,
// Lambda[0]=1) consistent with the syndrome sequence.
func berlekampMassey(synd []int, twoT int) []int {
	c := make([]int, twoT+1)
	b := make([]int, twoT+1)
	c[0], b[0] = 1, 1
	l := 0
	m := 1
	bCoeff := 1

	for n := 0; n < twoT; n++ {
		delta := synd[n]
		for i := 1; i <= l; i++ {
			delta ^= gfMul(c[i], synd[n-i])
		}
		if delta == 0 {
			m++
			continue
		}
		t := append([]int(nil), c...)
		coef := gfDiv(delta, bCoeff)
		for i := 0; i+m < len(c); i++ {
			c[i+m] ^= gfMul(coef, b[i])
		}
		if 2*l <= n {
			l = n + 1 - l
			b = t
			bCoeff = delta
			m = 1
		} else {
			m++
		}
	}
	return c[:l+1]
}

// chienSearch finds every root alpha^-l (l in [0,n)) of lambda by brute
// force evaluation. It returns the list of l values found.
func chienSearch(lambda []int, n int) ([]int, bool) {
	var locations []int
	for l := 0; l < n; l++ {
		if evalAscending(lambda, gfExp(-l)) == 0 {
			locations = append(locations, l)
		}
	}
	return locations, true
}

// forneyOmega computes Omega(x) = S(x)*Lambda(x) mod x^twoT, the error
// evaluator polynomial used by Forney's algorithm.
func forneyOmega(synd []int, lambda []int, twoT int) []int {
	prod := mulAscending(synd, lambda)
	if len(prod) > twoT {
		prod = prod[:twoT]
	}
	return prod
}

// formalDerivative computes Lambda'(x) in characteristic 2: the term at
// x^i survives (with the same coefficient) only when i+1 is odd, i.e. i
// is even; all other terms vanish because their coefficient multiplier
// is an even integer, which is zero mod 2.
func formalDerivative(p []int) []int {
	if len(p) <= 1 {
		return []int{0}
	}
	out := make([]int, len(p)-1)
	for i := 1; i < len(p); i++ {
		if i%2 == 1 {
			out[i-1] = p[i]
		}
	}
	return out
}

func evalAscending(p []int, x int) int {
	result := 0
	xPow := 1
	for _, c := range p {
		result ^= gfMul(c, xPow)
		xPow = gfMul(xPow, x)
	}
	return result
}

func mulAscending(a, b []int) []int {
	out := make([]int, len(a)+len(b)-1)
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
