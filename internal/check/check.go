// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for comskip, its ini file, ffmpeg, and
// ffprobe.
package check

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/comcut/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or file is
// missing. They are wrapped with the offending path; match with errors.Is.
var (
	ErrComskipNotFound = errors.New("comskip not found")
	ErrFfmpegNotFound  = errors.New("ffmpeg not found")
	ErrIniNotFound     = errors.New("comskip ini file not found")
	ErrTempRootMissing = errors.New("temp root is not a directory")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps is the pre-pipeline validation: the detector, its ini file, the
// transcoder, and the temp root must all be usable. ffprobe is optional.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.ComskipPath); err != nil {
		return errors.Wrap(ErrComskipNotFound, cfg.ComskipPath)
	}
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return errors.Wrap(ErrFfmpegNotFound, cfg.FFmpegPath)
	}
	if fi, err := os.Stat(cfg.ComskipIniPath); err != nil || fi.IsDir() {
		return errors.Wrap(ErrIniNotFound, cfg.ComskipIniPath)
	}
	if fi, err := os.Stat(cfg.TempRoot); err != nil || !fi.IsDir() {
		return errors.Wrap(ErrTempRootMissing, cfg.TempRoot)
	}
	return nil
}

// RunCheck runs the interactive --check flow and reports whether every
// required dependency is present. Optional pieces (ffprobe, libx264) only
// produce warnings.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	if cfg.ConfigFile != "" {
		log.Info("Config: %s", cfg.ConfigFile)
	} else {
		log.Info("Config: built-in defaults")
	}

	ok := true
	if !checkTool(log, "comskip", cfg.ComskipPath, "") {
		ok = false
	}
	if !checkTool(log, "ffmpeg", cfg.FFmpegPath, "-version") {
		ok = false
	}
	if cfg.FFprobePath != "" && !checkTool(log, "ffprobe", cfg.FFprobePath, "-version") {
		log.Warn("ffprobe is optional; duration reporting will be skipped")
	}

	if fi, err := os.Stat(cfg.ComskipIniPath); err != nil || fi.IsDir() {
		log.Error("comskip ini not found: %s", cfg.ComskipIniPath)
		ok = false
	} else {
		log.Success("comskip ini: %s", cfg.ComskipIniPath)
	}

	if fi, err := os.Stat(cfg.TempRoot); err != nil || !fi.IsDir() {
		log.Error("temp root not usable: %s", cfg.TempRoot)
		ok = false
	} else {
		log.Success("temp root: %s", cfg.TempRoot)
	}

	if ok {
		checkEncoder(log, cfg.FFmpegPath, "libx264")
	}
	return ok
}

// checkTool resolves path on PATH and, when versionFlag is set, logs the
// first line of its version output.
func checkTool(log Logger, label, path, versionFlag string) bool {
	resolved, err := exec.LookPath(path)
	if err != nil {
		log.Error("%s not found: %s", label, path)
		return false
	}
	if versionFlag == "" {
		log.Success("%s: %s", label, resolved)
		return true
	}

	out, err := exec.Command(resolved, versionFlag).Output()
	if err != nil {
		log.Warn("%s found at %s but %s failed: %v", label, resolved, versionFlag, err)
		return true
	}
	log.Success("%s: %s", label, firstLine(string(out)))
	return true
}

// checkEncoder warns when ffmpeg lacks the encoder used for re-encoding.
func checkEncoder(log Logger, ffmpegPath, encoder string) {
	out, err := exec.Command(ffmpegPath, "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	if strings.Contains(string(out), " "+encoder+" ") {
		log.Success("encoder %s available (re-encode mode)", encoder)
		return
	}
	log.Warn("encoder %s missing; --reencode and container conversion will fail", encoder)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return s[:idx]
	}
	return s
}
