// Package edl reads the break list (EDL) written by the commercial detector
// and derives the segments of the recording to keep.
//
// Each non-blank line holds "start end marker" in seconds; the marker is
// ignored. Breaks must be ordered and must not overlap.
package edl

import (
	"bufio"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Parse reads break intervals from r. Blank lines are skipped. A line
// without exactly three fields, a non-numeric or negative timestamp, an end
// before its start, or a break starting before the previous one ended all
// yield a *ParseError.
func Parse(r io.Reader) ([]BreakInterval, error) {
	var breaks []BreakInterval
	prevEnd := 0.0

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, &ParseError{Line: lineNo, Text: text, Msg: "want 3 fields (start end marker)"}
		}
		start, err := parseSeconds(fields[0])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: text, Msg: "bad start: " + err.Error()}
		}
		end, err := parseSeconds(fields[1])
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: text, Msg: "bad end: " + err.Error()}
		}

		if end < start {
			return nil, &ParseError{Line: lineNo, Text: text, Msg: "break ends before it starts"}
		}
		if start < prevEnd {
			return nil, &ParseError{Line: lineNo, Text: text, Msg: "break overlaps or precedes the previous one"}
		}

		breaks = append(breaks, BreakInterval{Start: start, End: end})
		prevEnd = end
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return breaks, nil
}

// ParseFile parses the break list at path. A missing file is not an error:
// found is false and no breaks are returned, which degrades to keeping the
// whole recording.
func ParseFile(path string) (breaks []BreakInterval, found bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	breaks, err = Parse(f)
	if err != nil {
		return nil, true, err
	}
	return breaks, true, nil
}

// KeepSegments returns the complement of breaks over the recording's
// timeline, in order. A break starting at 0 is pre-roll junk: no segment is
// emitted before it. The final segment always runs from the end of the last
// break to end of file, so zero breaks yield a single whole-file segment.
func KeepSegments(breaks []BreakInterval) []KeepSegment {
	segments := make([]KeepSegment, 0, len(breaks)+1)
	prevEnd := 0.0
	for _, b := range breaks {
		if b.Start != 0 {
			segments = append(segments, KeepSegment{Start: prevEnd, End: b.Start})
		}
		prevEnd = b.End
	}
	return append(segments, KeepSegment{Start: prevEnd, ToEOF: true})
}

// RemovedSeconds sums the length of all breaks.
func RemovedSeconds(breaks []BreakInterval) float64 {
	var total float64
	for _, b := range breaks {
		total += b.End - b.Start
	}
	return total
}

var errNegative = errors.New("negative timestamp")

func parseSeconds(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	if v < 0 {
		return 0, errNegative
	}
	return v, nil
}
