package ffmpeg

import (
	"math"
	"strconv"

	ffgo "github.com/u2takey/ffmpeg-go"

	"github.com/backmassage/comcut/internal/edl"
)

// Codec selects how the concatenation step writes video.
type Codec int

const (
	CodecCopy     Codec = iota // Stream-copy every input stream.
	CodecReencode              // Re-encode video with libx264, copy audio.
)

func (c Codec) String() string {
	if c == CodecReencode {
		return "reencode"
	}
	return "copy"
}

// EncodeOptions configures [CodecReencode].
type EncodeOptions struct {
	Preset string
	CRF    int
}

// GlobalArgs returns the flags placed ahead of every ffmpeg invocation.
// Loglevel is info when verbose, otherwise error.
func GlobalArgs(verbose bool) []string {
	args := []string{"-hide_banner", "-nostdin", "-y"}
	if verbose {
		return append(args, "-loglevel", "info", "-stats")
	}
	return append(args, "-loglevel", "error")
}

// ExtractArgs builds the arguments that cut seg out of src into dst with
// stream copy. Seeking is done on the output side so the cut lands on the
// requested timestamp rather than the preceding keyframe. Segments that run
// to end of file get no -t.
func ExtractArgs(src, dst string, seg edl.KeepSegment, verbose bool) []string {
	out := ffgo.KwArgs{
		"c":  "copy",
		"ss": edl.FormatSeconds(seg.Start),
	}
	if d, ok := seg.Duration(); ok {
		out["t"] = formatMillis(d)
	}
	stream := ffgo.Input(src).Output(dst, out)
	return append(GlobalArgs(verbose), stream.GetArgs()...)
}

// ConcatArgs builds the arguments that join the files listed in manifest
// (concat demuxer syntax) into dst.
func ConcatArgs(manifest, dst string, codec Codec, enc EncodeOptions, verbose bool) []string {
	in := ffgo.KwArgs{"f": "concat", "safe": "0"}

	var out ffgo.KwArgs
	switch codec {
	case CodecReencode:
		out = ffgo.KwArgs{
			"c:v":    "libx264",
			"preset": enc.Preset,
			"crf":    strconv.Itoa(enc.CRF),
			"c:a":    "copy",
		}
	default:
		out = ffgo.KwArgs{"c": "copy"}
	}

	stream := ffgo.Input(manifest, in).Output(dst, out)
	return append(GlobalArgs(verbose), stream.GetArgs()...)
}

// formatMillis rounds sec to the millisecond.
func formatMillis(sec float64) string {
	return strconv.FormatFloat(math.Round(sec*1000)/1000, 'f', -1, 64)
}
