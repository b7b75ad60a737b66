package probe

import (
	"fmt"
	"strings"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename       string
	NbStreams      int
	FormatName     string
	FormatLongName string
	Duration       float64 // Seconds; 0 when ffprobe could not tell.
	Size           int64
	BitRate        int64
}

// VideoStream is the subset of a video stream comcut reports.
type VideoStream struct {
	Index  int
	Codec  string
	Width  int
	Height int
}

// ProbeResult is the parsed output of one ffprobe call. PrimaryVideo is the
// first video stream that is not cover art (nil if none).
type ProbeResult struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
	AudioCount   int
	SubCount     int
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (p *ProbeResult) Resolution() string {
	if p.PrimaryVideo == nil || p.PrimaryVideo.Width <= 0 || p.PrimaryVideo.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", p.PrimaryVideo.Width, p.PrimaryVideo.Height)
}

// Summary renders a one-line description for the run log, e.g.
// "mpegts | h264 1920x1080 | 2 audio, 1 subtitle".
func (p *ProbeResult) Summary() string {
	parts := []string{p.Format.FormatName}
	if p.PrimaryVideo != nil {
		parts = append(parts, p.PrimaryVideo.Codec+" "+p.Resolution())
	} else {
		parts = append(parts, "no video")
	}
	streams := fmt.Sprintf("%d audio", p.AudioCount)
	if p.SubCount > 0 {
		streams += fmt.Sprintf(", %d subtitle", p.SubCount)
	}
	return strings.Join(append(parts, streams), " | ")
}
