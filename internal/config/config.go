// Package config holds runtime configuration: defaults, the INI config file,
// CLI flag overrides, and validation. A Config is assembled once at startup
// (defaults → file → flags) and is read-only once [Config.Validate] returns.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output on the console sink.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. Fields are grouped the same way as the
// sections of the config file.
type Config struct {
	// Paths (set from positional args).
	SourcePath string
	OutputArg  string // Optional second positional arg; only its directory is used.

	// ConfigFile is the INI file the settings were loaded from, if any.
	ConfigFile string

	// Helper apps.
	ComskipPath    string // Default: "comskip".
	ComskipIniPath string // Default: comskip.ini next to the executable.
	FFmpegPath     string // Default: "ffmpeg".
	FFprobePath    string // Default: "ffprobe". Empty disables probing.

	// Logging.
	LogFile        string
	ConsoleLogging bool // Forced on when LogFile is empty.
	Verbose        bool
	ColorMode      ColorMode

	// File manipulation.
	TempRoot      string // Default: os.TempDir().
	ComskipRoot   string // Detector output root. Empty means TempRoot.
	CopyOriginal  bool   // Work on a copy of the source inside the run dir.
	SaveAlways    bool   // Never delete run directories.
	SaveForensics bool   // Keep run directories when a run fails.
	KeepOriginal  bool   // Keep the source when the output lands elsewhere.
	NiceLevel     int    // 0 leaves the process priority alone.

	// Output.
	RenameOutput      bool   // Append OutputSuffix to the destination stem.
	OutputSuffix      string // Default: " - no commercials".
	ConvertContainer  string // Target extension without dot; empty keeps the source's.
	ForceReencode     bool   // Re-encode video during concatenation.
	ReencodeOnConvert bool   // Default: true. Re-encode when converting containers.
	EncoderPreset     string // Default: "medium".
	EncoderCRF        int    // Default: 20.

	// Sanity checks.
	MinSegmentBytes int64   // Default: 1000. Smaller segment files are dropped.
	DetectUnchanged bool    // Default: true. Report near-identical output as not modified.
	SimilarLow      float64 // Default: 0.99 (inclusive).
	SimilarHigh     float64 // Default: 1.01 (inclusive).
	SaneLow         float64 // Default: 0.5 (exclusive).
	SaneHigh        float64 // Default: 1.1 (exclusive).

	CheckOnly bool // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with every default applied. Used as the base
// before [Config.LoadFile] and flag overrides.
func DefaultConfig() Config {
	return Config{
		ComskipPath:       "comskip",
		ComskipIniPath:    filepath.Join(executableDir(), "comskip.ini"),
		FFmpegPath:        "ffmpeg",
		FFprobePath:       "ffprobe",
		ConsoleLogging:    true,
		ColorMode:         ColorAuto,
		TempRoot:          os.TempDir(),
		SaveForensics:     true,
		OutputSuffix:      " - no commercials",
		ReencodeOnConvert: true,
		EncoderPreset:     "medium",
		EncoderCRF:        20,
		MinSegmentBytes:   1000,
		DetectUnchanged:   true,
		SimilarLow:        0.99,
		SimilarHigh:       1.01,
		SaneLow:           0.5,
		SaneHigh:          1.1,
	}
}

var containerRe = regexp.MustCompile(`^[a-z0-9]+$`)

// Validate checks enum and numeric fields, normalizes the convert container,
// and requires a source path unless running in CheckOnly mode.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	c.ConvertContainer = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.ConvertContainer), "."))
	if c.ConvertContainer != "" && !containerRe.MatchString(c.ConvertContainer) {
		return fmt.Errorf("invalid convert container %q (use an extension like 'mkv')", c.ConvertContainer)
	}

	if c.NiceLevel < -20 || c.NiceLevel > 19 {
		return fmt.Errorf("nice level %d out of range (-20..19)", c.NiceLevel)
	}
	if c.MinSegmentBytes < 0 {
		return errors.New("min segment bytes must not be negative")
	}
	if c.EncoderCRF < 0 || c.EncoderCRF > 51 {
		return fmt.Errorf("encoder CRF %d out of range (0..51)", c.EncoderCRF)
	}
	if err := c.validateBands(); err != nil {
		return err
	}

	if c.TempRoot == "" {
		return errors.New("temp root must not be empty")
	}
	if c.LogFile == "" {
		c.ConsoleLogging = true
	}

	if c.CheckOnly {
		return nil
	}
	if c.SourcePath == "" {
		return errors.New("need a source media file")
	}
	return nil
}

// validateBands requires sane-low < similar-low <= similar-high < sane-high
// so the not-modified band always sits strictly inside the sane band.
func (c *Config) validateBands() error {
	if !(c.SaneLow > 0 && c.SaneLow < c.SimilarLow && c.SimilarLow <= c.SimilarHigh && c.SimilarHigh < c.SaneHigh) {
		return fmt.Errorf("invalid sanity bands: need 0 < sane-low (%g) < similar-low (%g) <= similar-high (%g) < sane-high (%g)",
			c.SaneLow, c.SimilarLow, c.SimilarHigh, c.SaneHigh)
	}
	return nil
}

// DetectorRoot returns the directory under which per-run detector output
// directories are created.
func (c *Config) DetectorRoot() string {
	if c.ComskipRoot != "" {
		return c.ComskipRoot
	}
	return c.TempRoot
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// executableDir returns the directory holding the running binary, falling
// back to the working directory.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
