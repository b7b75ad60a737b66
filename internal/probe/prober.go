package probe

import (
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Probe runs ffprobe (at ffprobePath) against path and returns the parsed
// result.
func Probe(ctx context.Context, ffprobePath, path string) (*ProbeResult, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrapf(err, "ffprobe %q", path)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parse ffprobe JSON")
	}
	return buildResult(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

// ffprobe reports numbers in the format section as strings.
type ffprobeFormat struct {
	Filename       string `json:"filename"`
	NbStreams      int    `json:"nb_streams"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
}

type ffprobeStream struct {
	Index       int            `json:"index"`
	CodecName   string         `json:"codec_name"`
	CodecType   string         `json:"codec_type"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Disposition map[string]int `json:"disposition"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *ProbeResult {
	f := &raw.Format
	pr := &ProbeResult{
		Format: FormatInfo{
			Filename:       f.Filename,
			NbStreams:      f.NbStreams,
			FormatName:     f.FormatName,
			FormatLongName: f.FormatLongName,
			Duration:       cast.ToFloat64(strings.TrimSpace(f.Duration)),
			Size:           cast.ToInt64(strings.TrimSpace(f.Size)),
			BitRate:        cast.ToInt64(strings.TrimSpace(f.BitRate)),
		},
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if s.Disposition["attached_pic"] == 1 || pr.PrimaryVideo != nil {
				continue
			}
			pr.PrimaryVideo = &VideoStream{
				Index:  s.Index,
				Codec:  s.CodecName,
				Width:  s.Width,
				Height: s.Height,
			}
		case "audio":
			pr.AudioCount++
		case "subtitle":
			pr.SubCount++
		}
	}
	return pr
}
