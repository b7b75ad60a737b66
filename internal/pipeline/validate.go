package pipeline

// Bands are the size-ratio thresholds for accepting an output.
//
//	[SimilarLow, SimilarHigh]  inclusive: nearly identical, NotModified
//	(SaneLow, SaneHigh)        exclusive: plausible cut, Success
//	anything else              SanityCheckFailed
type Bands struct {
	SimilarLow  float64
	SimilarHigh float64
	SaneLow     float64
	SaneHigh    float64

	// DetectUnchanged enables the NotModified band.
	DetectUnchanged bool
}

// Verdict is the validator's decision.
type Verdict struct {
	Outcome Outcome // Success, NotModified or SanityCheckFailed.
	Ratio   float64 // out/in; 0 when inSize is not positive.
}

// Validate compares output size to input size.
func Validate(inSize, outSize int64, b Bands) Verdict {
	if inSize <= 0 {
		return Verdict{Outcome: SanityCheckFailed}
	}
	ratio := float64(outSize) / float64(inSize)

	switch {
	case b.DetectUnchanged && ratio >= b.SimilarLow && ratio <= b.SimilarHigh:
		return Verdict{Outcome: NotModified, Ratio: ratio}
	case ratio > b.SaneLow && ratio < b.SaneHigh:
		return Verdict{Outcome: Success, Ratio: ratio}
	default:
		return Verdict{Outcome: SanityCheckFailed, Ratio: ratio}
	}
}
