package naming

import (
	"path/filepath"
	"strings"
)

// Options controls destination naming.
type Options struct {
	RenameOutput bool   // Append Suffix to the stem.
	Suffix       string // e.g. " - no commercials".
	Container    string // Target extension without dot; empty keeps the source's.
}

// DestPath returns the final destination for source.
//
// outputArg is the optional second positional argument. Only its directory
// is used; the basename always comes from the source with opts applied, so
// "/out/other.ts" and "/out/" both place "show.ts" in "/out". When empty the
// source's directory is used.
//
//	default:          <dir>/<stem><ext>
//	rename:           <dir>/<stem><suffix><ext>
//	convert (mkv):    <dir>/<stem>.mkv
func DestPath(source, outputArg string, opts Options) string {
	dir := filepath.Dir(source)
	if outputArg != "" {
		dir = filepath.Dir(outputArg)
	}
	return filepath.Join(dir, DestName(filepath.Base(source), opts))
}

// DestName applies rename and container options to a source basename.
func DestName(base string, opts Options) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if opts.RenameOutput {
		stem += opts.Suffix
	}
	if opts.Container != "" {
		ext = "." + opts.Container
	}
	return stem + ext
}

// StagingPath returns the hidden sibling of dest that the output is copied
// to before being renamed over dest, e.g. "/tv/.show.ts.comcut-1a2b3c".
// Keeping it in dest's directory makes the final rename atomic.
func StagingPath(dest, shortID string) string {
	return filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+".comcut-"+shortID)
}

// SameFile reports whether a and b name the same path after cleaning.
func SameFile(a, b string) bool {
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
