package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/comcut/internal/edl"
	"github.com/backmassage/comcut/internal/ffmpeg"
	"github.com/backmassage/comcut/internal/logging"
)

// SegmentFile is one extracted keep-segment on disk.
type SegmentFile struct {
	Index   int
	Segment edl.KeepSegment
	Path    string
	Size    int64
}

// Manifest is the ordered list of segment files to join.
type Manifest struct {
	Entries []SegmentFile
}

// Len returns the number of entries.
func (m *Manifest) Len() int { return len(m.Entries) }

// TotalBytes sums the entry sizes.
func (m *Manifest) TotalBytes() int64 {
	var n int64
	for _, e := range m.Entries {
		n += e.Size
	}
	return n
}

// Render returns the manifest in concat demuxer syntax. Entries are written
// as basenames, which ffmpeg resolves relative to the manifest file.
func (m *Manifest) Render() string {
	var b strings.Builder
	for _, e := range m.Entries {
		b.WriteString("file ")
		b.WriteString(quoteConcatPath(filepath.Base(e.Path)))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFile writes the rendered manifest to path.
func (m *Manifest) WriteFile(path string) error {
	return os.WriteFile(path, []byte(m.Render()), 0o644)
}

// quoteConcatPath single-quotes name for the concat demuxer, closing and
// reopening the quote around each embedded single quote.
func quoteConcatPath(name string) string {
	return "'" + strings.ReplaceAll(name, "'", `'\''`) + "'"
}

// Extractor cuts keep-segments out of a recording with one ffmpeg call each.
type Extractor struct {
	FFmpegPath string
	Runner     ffmpeg.CommandRunner
	MinBytes   int64 // Segment files smaller than this are dropped.
	Verbose    bool
	Log        *logging.Logger
}

// Extract writes one file per keep-segment (named by segPath) and returns
// the manifest of files worth joining. Zero-length segments are skipped
// without invoking ffmpeg; files below MinBytes, typically the sliver left
// when the last break runs to the end of the recording, are dropped. Any
// ffmpeg failure aborts.
func (x *Extractor) Extract(ctx context.Context, src string, segs []edl.KeepSegment, segPath func(int) string) (*Manifest, error) {
	m := &Manifest{}
	for i, seg := range segs {
		if d, ok := seg.Duration(); ok && d <= 0 {
			x.Log.Debug("Segment %d (%s) is empty, skipping", i, seg)
			continue
		}

		dst := segPath(i)
		args := ffmpeg.ExtractArgs(src, dst, seg, x.Verbose)
		x.Log.Debug("Extract %d: %s %s", i, x.FFmpegPath, strings.Join(args, " "))

		if err := x.Runner.Run(ctx, x.FFmpegPath, args...); err != nil {
			return nil, stageError(StageExtract, ToolInvocationError, err, "extract segment %d (%s)", i, seg)
		}

		fi, err := os.Stat(dst)
		switch {
		case os.IsNotExist(err):
			x.Log.Info("Segment %d (%s) produced no file, dropping", i, seg)
			continue
		case err != nil:
			return nil, stageError(StageExtract, SetupError, err, "stat segment %d", i)
		case fi.Size() < x.MinBytes:
			x.Log.Info("Segment %d (%s) is only %d bytes, dropping", i, seg, fi.Size())
			continue
		}

		m.Entries = append(m.Entries, SegmentFile{Index: i, Segment: seg, Path: dst, Size: fi.Size()})
		x.Log.Debug("Segment %d: %s, %d bytes", i, seg, fi.Size())
	}
	return m, nil
}
