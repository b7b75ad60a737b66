package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/backmassage/comcut/internal/config"
	"github.com/backmassage/comcut/internal/logging"
	"github.com/backmassage/comcut/internal/naming"
)

// RunContext carries the run id and every path derived from it. It is built
// once by [NewRunContext] and read by each stage.
type RunContext struct {
	RunID   string
	ShortID string

	WorkDir     string // <temp-root>/<RunID>; segments, manifest, output.
	DetectorDir string // comskip output; WorkDir unless a separate root is set.

	SourcePath    string // The recording as given, made absolute.
	WorkingSource string // What the tools read: SourcePath or a copy in WorkDir/input.

	ManifestPath string // WorkDir/segments.txt
	OutputPath   string // WorkDir/output/<dest basename>
	DestPath     string // Final location of the cut recording.
}

// NewRunContext derives all run paths from cfg and runID.
func NewRunContext(cfg *config.Config, runID string) (*RunContext, error) {
	src, err := filepath.Abs(cfg.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("resolve source path: %w", err)
	}

	rc := &RunContext{
		RunID:      runID,
		ShortID:    logging.ShortID(runID),
		WorkDir:    filepath.Join(cfg.TempRoot, runID),
		SourcePath: src,
	}

	rc.DetectorDir = rc.WorkDir
	if root := cfg.DetectorRoot(); filepath.Clean(root) != filepath.Clean(cfg.TempRoot) {
		rc.DetectorDir = filepath.Join(root, runID)
	}

	// save-always implies copy-original.
	rc.WorkingSource = src
	if cfg.CopyOriginal || cfg.SaveAlways {
		rc.WorkingSource = filepath.Join(rc.WorkDir, "input", filepath.Base(src))
	}

	rc.DestPath = naming.DestPath(src, cfg.OutputArg, naming.Options{
		RenameOutput: cfg.RenameOutput,
		Suffix:       cfg.OutputSuffix,
		Container:    cfg.ConvertContainer,
	})
	rc.ManifestPath = filepath.Join(rc.WorkDir, "segments.txt")
	rc.OutputPath = filepath.Join(rc.WorkDir, "output", filepath.Base(rc.DestPath))
	return rc, nil
}

// SeparateDetectorDir reports whether comskip writes outside WorkDir, in
// which case its directory is cleaned up on its own.
func (rc *RunContext) SeparateDetectorDir() bool {
	return rc.DetectorDir != rc.WorkDir
}

// SegmentPath returns the file for keep-segment i, named by index and
// carrying the source's extension.
func (rc *RunContext) SegmentPath(i int) string {
	return filepath.Join(rc.WorkDir, fmt.Sprintf("segment-%d%s", i, filepath.Ext(rc.SourcePath)))
}

// ReplacesSource reports whether the output lands on the source path.
func (rc *RunContext) ReplacesSource() bool {
	return naming.SameFile(rc.DestPath, rc.SourcePath)
}
