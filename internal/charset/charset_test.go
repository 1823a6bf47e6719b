package charset

import "testing"

func TestGuess_FallsBackWhenAmbiguous(t *testing.T) {
	data := []byte{0xA1, 0xA2, 0xA3, 0xA4}
	got := Default.Guess(data, ShiftJIS)
	if got != ShiftJIS {
		t.Errorf("Guess(%v, fallback=ShiftJIS) = %v, want ShiftJIS", data, got)
	}
}

func TestGuess_PrefersValidUTF8(t *testing.T) {
	data := []byte("héllo wörld")
	if got := Default.Guess(data, ISO8859_1); got != UTF8 {
		t.Errorf("Guess(valid utf-8) = %v, want UTF8", got)
	}
}

func TestGuess_DetectsShiftJISLeadBytes(t *testing.T) {
	data := []byte{0x82, 0xA0, 0x82, 0xA2} // Shift-JIS for "ai" hiragana
	if got := Default.Guess(data, Unknown); got != ShiftJIS {
		t.Errorf("Guess(shift-jis bytes) = %v, want ShiftJIS", got)
	}
}

func TestToUTF8_ASCIIPassthrough(t *testing.T) {
	if got := Default.ToUTF8([]byte("hello"), ASCII); got != "hello" {
		t.Errorf("ToUTF8(ASCII) = %q, want %q", got, "hello")
	}
}

func TestToUTF8_Latin1(t *testing.T) {
	// 0xE9 in Latin-1 is 'é'.
	got := Default.ToUTF8([]byte{0xE9}, ISO8859_1)
	want := "é"
	if got != want {
		t.Errorf("ToUTF8(Latin-1, 0xe9) = %q, want %q", got, want)
	}
}

func TestECIValueToSet(t *testing.T) {
	cases := []struct {
		eci  uint32
		want Set
		ok   bool
	}{
		{3, ISO8859_1, true},
		{26, UTF8, true},
		{20, ShiftJIS, true},
		{999, Unknown, false},
	}
	for _, c := range cases {
		got, ok := ECIValueToSet(c.eci)
		if got != c.want || ok != c.ok {
			t.Errorf("ECIValueToSet(%d) = (%v,%v), want (%v,%v)", c.eci, got, ok, c.want, c.ok)
		}
	}
}

func TestInstall_ReplacesActiveCodec(t *testing.T) {
	orig := Active()
	defer Install(orig)

	Install(stdCodec{})
	if Active() == nil {
		t.Fatal("Active() returned nil after Install")
	}
}
