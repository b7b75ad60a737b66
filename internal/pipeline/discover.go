package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Recognized media file extensions (lowercase, with leading dot). Anything
// else still runs, with a warning.
var mediaExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".avi":  true,
	".m4v":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".ts":   true,
	".m2ts": true,
	".mts":  true,
	".mpg":  true,
	".mpeg": true,
	".vob":  true,
	".wtv":  true,
}

// IsMediaFile reports whether path has a recognized media extension.
func IsMediaFile(path string) bool {
	return mediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// statSource checks that path is an existing regular file and returns its
// size.
func statSource(path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if !fi.Mode().IsRegular() {
		return 0, errors.Errorf("%s is not a regular file", path)
	}
	return fi.Size(), nil
}
