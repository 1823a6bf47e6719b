package bitstream

import (
	"reflect"
	"testing"

	"github.com/barcodelab/qrdecode/internal/bitmatrix"
)

func TestDecode_Numeric(t *testing.T) {
	bb := bitmatrix.NewBitArray()
	bb.AppendBits(uint32(ModeNumeric), 4)
	bb.AppendBits(7, numericCountBits(Bucket1to9)) // "1234567"
	bb.AppendBits(123, 10)
	bb.AppendBits(456, 10)
	bb.AppendBits(7, 4)
	bb.AppendBits(uint32(ModeTerminator), 4)

	segs, err := Decode(bb.ToBytes(0, bb.Size()), Bucket1to9)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(segs) != 1 || segs[0].Mode != ModeNumeric || segs[0].Text != "1234567" {
		t.Fatalf("got %+v, want single numeric segment \"1234567\"", segs)
	}
}

func TestDecode_Alphanumeric(t *testing.T) {
	bb := bitmatrix.NewBitArray()
	bb.AppendBits(uint32(ModeAlphanumeric), 4)
	bb.AppendBits(3, alphanumericCountBits(Bucket1to9)) // "AB1"
	bb.AppendBits(10*45+11, 11)                         // A=10, B=11
	bb.AppendBits(1, 6)                                 // "1"
	bb.AppendBits(uint32(ModeTerminator), 4)

	segs, err := Decode(bb.ToBytes(0, bb.Size()), Bucket1to9)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(segs) != 1 || segs[0].Text != "AB1" {
		t.Fatalf("got %+v, want \"AB1\"", segs)
	}
}

func TestDecode_Byte(t *testing.T) {
	bb := bitmatrix.NewBitArray()
	bb.AppendBits(uint32(ModeByte), 4)
	payload := []byte{0xA1, 0xA2, 0xA3, 0xA4}
	bb.AppendBits(uint32(len(payload)), byteCountBits(Bucket1to9))
	for _, b := range payload {
		bb.AppendBits(uint32(b), 8)
	}
	bb.AppendBits(uint32(ModeTerminator), 4)

	segs, err := Decode(bb.ToBytes(0, bb.Size()), Bucket1to9)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(segs) != 1 || !reflect.DeepEqual(segs[0].Bytes, payload) {
		t.Fatalf("got %+v, want bytes %v", segs, payload)
	}
}

func TestDecode_ECIThenByte(t *testing.T) {
	bb := bitmatrix.NewBitArray()
	bb.AppendBits(uint32(ModeECI), 4)
	bb.AppendBits(26, 8) // UTF-8 designator, single-byte form
	bb.AppendBits(uint32(ModeByte), 4)
	bb.AppendBits(1, byteCountBits(Bucket1to9))
	bb.AppendBits('A', 8)
	bb.AppendBits(uint32(ModeTerminator), 4)

	segs, err := Decode(bb.ToBytes(0, bb.Size()), Bucket1to9)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(segs) != 2 || segs[0].Mode != ModeECI || segs[0].ECIValue != 26 {
		t.Fatalf("got %+v, want ECI(26) then byte segment", segs)
	}
	if segs[1].Mode != ModeByte || string(segs[1].Bytes) != "A" {
		t.Fatalf("got %+v, want byte segment \"A\"", segs)
	}
}

func TestDecode_StructuredAppend(t *testing.T) {
	bb := bitmatrix.NewBitArray()
	bb.AppendBits(uint32(ModeStructuredAppend), 4)
	bb.AppendBits(2, 4)    // index
	bb.AppendBits(3, 4)    // total-1 -> total 4
	bb.AppendBits(0xAB, 8) // parity
	bb.AppendBits(0, 4)    // reserved
	bb.AppendBits(uint32(ModeTerminator), 4)

	segs, err := Decode(bb.ToBytes(0, bb.Size()), Bucket1to9)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	sa := segs[0].StructuredAppend
	if sa.Index != 2 || sa.TotalCount != 4 || sa.Parity != 0xAB {
		t.Fatalf("got %+v, want index=2 total=4 parity=0xab", sa)
	}
}

func TestDecode_TruncatedCharacterCountFails(t *testing.T) {
	bb := bitmatrix.NewBitArray()
	bb.AppendBits(uint32(ModeNumeric), 4)
	bb.AppendBits(5, numericCountBits(Bucket1to9)) // claims 5 digits, none follow
	_, err := Decode(bb.ToBytes(0, bb.Size()), Bucket1to9)
	if err == nil {
		t.Fatal("expected Decode to fail on overrunning character count")
	}
}

func TestDecode_EmptyStreamYieldsNoSegments(t *testing.T) {
	segs, err := Decode(nil, Bucket1to9)
	if err != nil || len(segs) != 0 {
		t.Fatalf("Decode(nil) = (%v,%v), want (nil,nil)", segs, err)
	}
}

func TestBucketForVersion(t *testing.T) {
	cases := []struct {
		version int
		want    VersionBucket
	}{
		{1, Bucket1to9}, {9, Bucket1to9},
		{10, Bucket10to26}, {26, Bucket10to26},
		{27, Bucket27to40}, {40, Bucket27to40},
	}
	for _, c := range cases {
		if got := BucketForVersion(c.version); got != c.want {
			t.Errorf("BucketForVersion(%d) = %v, want %v", c.version, got, c.want)
		}
	}
}
