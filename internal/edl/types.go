package edl

import (
	"fmt"
	"strconv"
)

// BreakInterval is a commercial break reported by the detector, in seconds
// from the start of the recording.
type BreakInterval struct {
	Start float64
	End   float64
}

// KeepSegment is a stretch of the recording to retain. When ToEOF is set the
// segment runs to the end of the file and End is meaningless.
type KeepSegment struct {
	Start float64
	End   float64
	ToEOF bool
}

// Duration returns the segment length in seconds. ok is false for segments
// that run to end of file, whose length is unknown here.
func (s KeepSegment) Duration() (sec float64, ok bool) {
	if s.ToEOF {
		return 0, false
	}
	return s.End - s.Start, true
}

// String renders the segment for logs, e.g. "30 → 600" or "660 → EOF".
func (s KeepSegment) String() string {
	end := "EOF"
	if !s.ToEOF {
		end = FormatSeconds(s.End)
	}
	return FormatSeconds(s.Start) + " → " + end
}

// FormatSeconds renders a timestamp the way ffmpeg accepts it: plain
// decimal seconds, no exponent, no trailing zeros.
func FormatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}

// ParseError reports a malformed or inconsistent break-list line.
type ParseError struct {
	Line int    // 1-based line number.
	Text string // The offending line, trimmed.
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("break list line %d (%q): %s", e.Line, e.Text, e.Msg)
}
