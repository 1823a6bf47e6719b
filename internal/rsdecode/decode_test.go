package rsdecode

import (
	"math/rand"
	"testing"
)

// encodeForTest computes EC codewords the same way
// AshokShau-qrcode/reedsolomon.go's CalculateECCodewords does, purely so
// these tests can build known-good codewords to corrupt and correct.
// This is test-only scaffolding, not a public encoder.
func encodeForTest(data []int, numEC int) []int {
	gen := []int{1}
	for i := 0; i < numEC; i++ {
		gen = gfPolyMulInt(gen, []int{1, expTable[i]})
	}
	remainder := make([]int, len(data)+numEC)
	copy(remainder, data)
	for i := 0; i < len(data); i++ {
		coef := remainder[i]
		if coef != 0 {
			for j := 0; j < len(gen); j++ {
				remainder[i+j] ^= gfMul(gen[j], coef)
			}
		}
	}
	out := append(append([]int(nil), data...), remainder[len(data):]...)
	return out
}

func gfPolyMulInt(p, q []int) []int {
	res := make([]int, len(p)+len(q)-1)
	for i := range p {
		for j := range q {
			res[i+j] ^= gfMul(p[i], q[j])
		}
	}
	return res
}

func TestCorrect_NoErrors(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	cw := encodeForTest(data, 10)
	n, err := Correct(append([]int(nil), cw...), 10)
	if err != nil || n != 0 {
		t.Fatalf("Correct() on clean block = (%d,%v), want (0,nil)", n, err)
	}
}

func TestCorrect_WithinCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]int, 16)
	for i := range data {
		data[i] = i * 7 % 256
	}
	numEC := 10
	t_max := numEC / 2

	for trial := 0; trial < 20; trial++ {
		cw := encodeForTest(data, numEC)
		corrupted := append([]int(nil), cw...)
		numErrs := 1 + rng.Intn(t_max)
		used := map[int]bool{}
		for i := 0; i < numErrs; i++ {
			pos := rng.Intn(len(corrupted))
			for used[pos] {
				pos = rng.Intn(len(corrupted))
			}
			used[pos] = true
			corrupted[pos] ^= 1 + rng.Intn(255)
		}
		n, err := Correct(corrupted, numEC)
		if err != nil {
			t.Fatalf("trial %d: Correct() with %d errors failed: %v", trial, numErrs, err)
		}
		if n != numErrs {
			t.Errorf("trial %d: Correct() reported %d errors, want %d", trial, n, numErrs)
		}
		for i := range cw {
			if corrupted[i] != cw[i] {
				t.Fatalf("trial %d: byte %d = %d, want %d", trial, i, corrupted[i], cw[i])
			}
		}
	}
}

func TestCorrect_NeverMisattributesOnOverload(t *testing.T) {
	// With more errors than the block can correct, Correct must either
	// report ErrUncorrectable or (if it happens to land on a
	// mathematically valid but different codeword) leave a block that is
	// internally consistent -- it must never silently return success
	// while reporting zero corrections for actual corruption.
	data := []int{10, 20, 30, 40, 50, 60}
	numEC := 6
	cw := encodeForTest(data, numEC)
	corrupted := append([]int(nil), cw...)
	for i := 0; i < numEC+1 && i < len(corrupted); i++ {
		corrupted[i] ^= 0xFF
	}
	_, err := Correct(corrupted, numEC)
	if err == nil {
		same := true
		for i := range cw {
			if corrupted[i] != cw[i] {
				same = false
			}
		}
		if !same {
			t.Fatalf("Correct() claimed success but returned a different message for an overloaded block")
		}
	}
}
