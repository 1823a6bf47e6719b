package qrdecode

// Options configures a Decode call (spec section 6's Reader options).
// The zero value is not meant to be used directly; call DefaultOptions
// and override fields as needed.
type Options struct {
	// TryHarder is accepted but not read by Decode: detection runs the
	// same heuristics whatever its value.
	TryHarder bool
	// TryRotate, TryInvert toggle orchestrator retry passes (spec
	// section 4.11). Downscale retries are out of scope: the engine
	// never resamples the input image (section 1's "no I/O" boundary
	// extends to not synthesizing new source pixels).
	TryRotate bool
	TryInvert bool

	// IsPure is accepted but not read by Decode: the full finder-pattern
	// detection runs whatever its value.
	IsPure bool

	// Binarizer selects the thresholding strategy.
	Binarizer BinarizerKind
	// FixedThreshold is used only when Binarizer is BinarizerFixedThreshold.
	FixedThreshold byte

	// MaxNumberOfSymbols caps the number of returned symbols. Zero means
	// unlimited.
	MaxNumberOfSymbols int

	// ReturnErrors keeps failed-late-stage symbols in the result list
	// with their Err populated, instead of dropping them.
	ReturnErrors bool

	// TextMode controls how Result.Text renders non-printable bytes and
	// ECI transitions.
	TextMode TextMode

	// CharacterSet is the fallback encoding used when no ECI is
	// declared and byte-segment content can't be disambiguated.
	CharacterSet CharacterSet
}

// DefaultOptions returns the engine's documented defaults: tryHarder
// and the rotate/invert retries on, axis-aligned-only detection off.
func DefaultOptions() Options {
	return Options{
		TryHarder:          true,
		TryRotate:          true,
		TryInvert:          true,
		Binarizer:          BinarizerLocalAverage,
		MaxNumberOfSymbols: 0,
		TextMode:           TextModePlain,
		CharacterSet:       CharsetUnknown,
	}
}
