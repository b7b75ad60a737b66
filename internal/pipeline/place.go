package pipeline

import (
	"io"
	"os"
	"path/filepath"

	"github.com/backmassage/comcut/internal/naming"
)

// placeOutput moves the finished output to rc.DestPath. A same-filesystem
// rename is tried first; otherwise the output is copied to a hidden staging
// file next to the destination and renamed over it, so a partial copy never
// replaces the original.
func placeOutput(rc *RunContext) error {
	if err := os.MkdirAll(filepath.Dir(rc.DestPath), 0o755); err != nil {
		return stageError(StagePlace, SetupError, err, "create destination dir")
	}
	if err := os.Rename(rc.OutputPath, rc.DestPath); err == nil {
		return nil
	}

	staging := naming.StagingPath(rc.DestPath, rc.ShortID)
	if err := copyFile(rc.OutputPath, staging); err != nil {
		os.Remove(staging)
		return stageError(StagePlace, SetupError, err, "stage output at %s", staging)
	}
	if err := os.Rename(staging, rc.DestPath); err != nil {
		os.Remove(staging)
		return stageError(StagePlace, SetupError, err, "replace %s", rc.DestPath)
	}
	return nil
}

// copyFile copies src to dst, preserving src's permission bits, and syncs
// dst before returning.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fi.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
