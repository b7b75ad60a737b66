// Package comskip invokes the external commercial detector and locates the
// break list it writes.
package comskip

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Runner runs an external tool to completion and returns an error for a
// non-zero exit status. ffmpeg.ExecRunner satisfies it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Detector runs comskip against a recording.
type Detector struct {
	Path    string // comskip binary.
	IniPath string // comskip.ini handed to --ini.
	Runner  Runner
}

// Args returns the command-line arguments for detecting breaks in src with
// output written to outDir.
func (d *Detector) Args(outDir, src string) []string {
	return []string{"--output", outDir, "--ini", d.IniPath, src}
}

// Detect runs comskip and returns the path where the break list is expected.
// The file may not exist when comskip found nothing to report; callers treat
// that as zero breaks.
func (d *Detector) Detect(ctx context.Context, outDir, src string) (string, error) {
	if err := d.Runner.Run(ctx, d.Path, d.Args(outDir, src)...); err != nil {
		return "", errors.Wrapf(err, "comskip %s", filepath.Base(src))
	}
	return EDLPath(outDir, src), nil
}

// EDLPath is where comskip writes the break list for src: the source's stem
// with an .edl extension, inside outDir.
func EDLPath(outDir, src string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+".edl")
}
