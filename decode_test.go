package qrdecode

import (
	"testing"

	"github.com/barcodelab/qrdecode/internal/bitmatrix"
)

func TestDecode_BlankImageFindsNothing(t *testing.T) {
	w, h := 64, 64
	data := make([]byte, w*h)
	for i := range data {
		data[i] = 255
	}
	img := Image{Data: data, Width: w, Height: h, RowStride: w, PixStride: 1, Format: PixelLum}

	results, err := Decode(img, DefaultOptions())
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results on a blank image, want 0", len(results))
	}
}

func TestDecode_RejectsMalformedImage(t *testing.T) {
	img := Image{Data: []byte{1, 2, 3}, Width: 10, Height: 10, RowStride: 10, PixStride: 1, Format: PixelLum}
	if _, err := Decode(img, DefaultOptions()); err == nil {
		t.Error("expected an error for a buffer shorter than the declared dimensions")
	}
}

func TestRotateBitMatrix_IdentityOnZeroDegrees(t *testing.T) {
	m := bitmatrix.NewSquare(4)
	m.Set(1, 1)
	got := rotateBitMatrix(m, 0)
	if got != m {
		t.Error("rotateBitMatrix(_, 0) should return the same matrix")
	}
}
