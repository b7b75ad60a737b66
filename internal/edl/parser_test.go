package edl

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	in := "0.00\t30.03\t0\n" +
		"\n" +
		"600.10  660.00  0\r\n" +
		"1200 1260.5 0\n"
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []BreakInterval{{0, 30.03}, {600.1, 660}, {1200, 1260.5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d breaks, want 0", len(got))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantLine int
	}{
		{"two fields", "10 20\n", 1},
		{"four fields", "10 20 0 extra\n", 1},
		{"non-numeric start", "ten 20 0\n", 1},
		{"non-numeric end", "10 twenty 0\n", 1},
		{"nan", "NaN 20 0\n", 1},
		{"negative", "-5 20 0\n", 1},
		{"end before start", "30 20 0\n", 1},
		{"overlap", "10 100 0\n90 120 0\n", 2},
		{"out of order", "500 520 0\n10 20 0\n", 2},
		{"error after blank lines", "10 20 0\n\n\nbad\n", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse error = %v, want *ParseError", err)
			}
			if pe.Line != tt.wantLine {
				t.Errorf("ParseError.Line = %d, want %d", pe.Line, tt.wantLine)
			}
		})
	}
}

func TestParse_TouchingBreaksAllowed(t *testing.T) {
	got, err := Parse(strings.NewReader("100 200 0\n200 260 0\n"))
	if err != nil {
		t.Fatalf("contiguous breaks should parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d breaks, want 2", len(got))
	}
}

func TestKeepSegments(t *testing.T) {
	tests := []struct {
		name   string
		breaks []BreakInterval
		want   []KeepSegment
	}{
		{
			name:   "no breaks keeps whole file",
			breaks: nil,
			want:   []KeepSegment{{Start: 0, ToEOF: true}},
		},
		{
			name:   "pre-roll junk skipped",
			breaks: []BreakInterval{{0, 30}, {600, 660}},
			want:   []KeepSegment{{Start: 30, End: 600}, {Start: 660, ToEOF: true}},
		},
		{
			name:   "breaks mid-program",
			breaks: []BreakInterval{{300, 360}, {900, 990}},
			want: []KeepSegment{
				{Start: 0, End: 300},
				{Start: 360, End: 900},
				{Start: 990, ToEOF: true},
			},
		},
		{
			name:   "single break at start",
			breaks: []BreakInterval{{0, 45.5}},
			want:   []KeepSegment{{Start: 45.5, ToEOF: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeepSegments(tt.breaks)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("KeepSegments = %v, want %v", got, tt.want)
			}
		})
	}
}

// Keep segments and breaks together must tile [0, EOF) with no gap or
// overlap, and there is exactly one more segment than breaks when no break
// starts at zero.
func TestKeepSegments_TilesTimeline(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(8)
		var breaks []BreakInterval
		cursor := 1 + rng.Float64()*60
		for i := 0; i < n; i++ {
			start := cursor + rng.Float64()*600
			end := start + 1 + rng.Float64()*180
			breaks = append(breaks, BreakInterval{start, end})
			cursor = end
		}

		segs := KeepSegments(breaks)
		if len(segs) != n+1 {
			t.Fatalf("iter %d: %d breaks gave %d segments, want %d", iter, n, len(segs), n+1)
		}
		if segs[0].Start != 0 {
			t.Fatalf("iter %d: first segment starts at %g", iter, segs[0].Start)
		}
		for i, b := range breaks {
			if segs[i].End != b.Start || segs[i+1].Start != b.End {
				t.Fatalf("iter %d: break %v not flanked by %v and %v", iter, b, segs[i], segs[i+1])
			}
		}
		for i, s := range segs {
			last := i == len(segs)-1
			if s.ToEOF != last {
				t.Fatalf("iter %d: segment %d ToEOF=%v", iter, i, s.ToEOF)
			}
		}
	}
}

func TestParseFile_Missing(t *testing.T) {
	breaks, found, err := ParseFile(filepath.Join(t.TempDir(), "show.edl"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if found || len(breaks) != 0 {
		t.Errorf("missing file: found=%v breaks=%v", found, breaks)
	}
	segs := KeepSegments(breaks)
	if len(segs) != 1 || !segs[0].ToEOF || segs[0].Start != 0 {
		t.Errorf("missing file should keep whole recording, got %v", segs)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.edl")
	if err := os.WriteFile(path, []byte("0 10 0\n500 520 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	breaks, found, err := ParseFile(path)
	if err != nil || !found {
		t.Fatalf("ParseFile: found=%v err=%v", found, err)
	}
	if got := RemovedSeconds(breaks); got != 30 {
		t.Errorf("RemovedSeconds = %g, want 30", got)
	}
}

func TestKeepSegment_DurationAndString(t *testing.T) {
	s := KeepSegment{Start: 30.5, End: 600}
	if d, ok := s.Duration(); !ok || d != 569.5 {
		t.Errorf("Duration = %g, %v", d, ok)
	}
	if got := s.String(); got != "30.5 → 600" {
		t.Errorf("String = %q", got)
	}
	eof := KeepSegment{Start: 660, ToEOF: true}
	if _, ok := eof.Duration(); ok {
		t.Error("EOF segment should not report a duration")
	}
	if got := eof.String(); got != "660 → EOF" {
		t.Errorf("String = %q", got)
	}
}
