// Package ffmpeg builds the transcoder command lines comcut needs (segment
// extraction and manifest concatenation) and runs external tools through a
// [CommandRunner] so the pipeline can be exercised without real binaries.
//
// Argument compilation is delegated to github.com/u2takey/ffmpeg-go; this
// package only prepends the shared global flags and keeps the destination
// path as the final argument.
package ffmpeg
