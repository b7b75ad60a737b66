package pipeline

import (
	"context"
	"strings"

	"github.com/backmassage/comcut/internal/ffmpeg"
	"github.com/backmassage/comcut/internal/logging"
)

// Concatenator joins a manifest into one file with a single ffmpeg call.
type Concatenator struct {
	FFmpegPath string
	Runner     ffmpeg.CommandRunner
	Codec      ffmpeg.Codec
	Encode     ffmpeg.EncodeOptions
	Verbose    bool
	Log        *logging.Logger
}

// Concat writes m to manifestPath and joins its entries, in order, into
// out. An empty manifest is rejected without invoking ffmpeg.
func (c *Concatenator) Concat(ctx context.Context, m *Manifest, manifestPath, out string) error {
	if m.Len() == 0 {
		return stageError(StageConcat, ValidationFailure, nil, "no segments survived extraction")
	}
	if err := m.WriteFile(manifestPath); err != nil {
		return stageError(StageConcat, SetupError, err, "write manifest")
	}

	args := ffmpeg.ConcatArgs(manifestPath, out, c.Codec, c.Encode, c.Verbose)
	c.Log.Debug("Concat (%s): %s %s", c.Codec, c.FFmpegPath, strings.Join(args, " "))

	if err := c.Runner.Run(ctx, c.FFmpegPath, args...); err != nil {
		return stageError(StageConcat, ToolInvocationError, err, "join %d segments", m.Len())
	}
	return nil
}

// chooseCodec picks re-encoding when forced, or when converting to a
// different container with re-encode-on-convert enabled.
func chooseCodec(force, reencodeOnConvert bool, srcExt, destExt string) ffmpeg.Codec {
	if force {
		return ffmpeg.CodecReencode
	}
	if reencodeOnConvert && !strings.EqualFold(srcExt, destExt) {
		return ffmpeg.CodecReencode
	}
	return ffmpeg.CodecCopy
}
