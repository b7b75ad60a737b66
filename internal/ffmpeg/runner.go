package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandRunner runs an external tool to completion. Implementations must
// return an error for a non-zero exit status.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExitError reports a failed tool invocation together with its captured
// stderr.
type ExitError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: %v", filepath.Base(e.Tool), e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// CommandLine renders the invocation for logs.
func (e *ExitError) CommandLine() string {
	return e.Tool + " " + strings.Join(e.Args, " ")
}

// ExecRunner runs tools with os/exec. Stderr is always captured; when
// Verbose is set it is also tee'd to Stderr (os.Stderr when nil) in real
// time so ffmpeg progress stays visible.
type ExecRunner struct {
	Verbose bool
	Stderr  io.Writer
}

// Run executes name with args. The child is killed when ctx is cancelled.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderrBuf bytes.Buffer
	if r.Verbose {
		tee := r.Stderr
		if tee == nil {
			tee = os.Stderr
		}
		cmd.Stderr = io.MultiWriter(&stderrBuf, tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return &ExitError{Tool: name, Args: args, Stderr: stderrBuf.String(), Err: err}
	}
	return nil
}

// StderrTail returns up to the last n non-empty lines of the stderr captured
// in err, or nil when err carries none.
func StderrTail(err error, n int) []string {
	var ee *ExitError
	if !errors.As(err, &ee) || strings.TrimSpace(ee.Stderr) == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSpace(ee.Stderr), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
