package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/backmassage/comcut/internal/config"
)

type mockLogger struct {
	lines []string
}

func (m *mockLogger) add(level, f string, a ...interface{}) {
	m.lines = append(m.lines, level+" "+fmt.Sprintf(f, a...))
}
func (m *mockLogger) Info(f string, a ...interface{})    { m.add("INFO", f, a...) }
func (m *mockLogger) Success(f string, a ...interface{}) { m.add("OK", f, a...) }
func (m *mockLogger) Warn(f string, a ...interface{})    { m.add("WARN", f, a...) }
func (m *mockLogger) Error(f string, a ...interface{})   { m.add("ERROR", f, a...) }

func (m *mockLogger) has(prefix string) bool {
	for _, l := range m.lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

// fakeTool writes an executable shell script that prints a version line.
func fakeTool(t *testing.T, dir, name string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\necho \"" + name + " version test\"\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	ini := filepath.Join(dir, "comskip.ini")
	if err := os.WriteFile(ini, []byte("detect_method=43\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.ComskipPath = fakeTool(t, dir, "comskip")
	cfg.FFmpegPath = fakeTool(t, dir, "ffmpeg")
	cfg.FFprobePath = fakeTool(t, dir, "ffprobe")
	cfg.ComskipIniPath = ini
	cfg.TempRoot = dir
	return &cfg
}

func TestCheckDeps(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		want   error
	}{
		{"all present", func(c *config.Config) {}, nil},
		{"comskip missing", func(c *config.Config) { c.ComskipPath = "/nonexistent/comskip" }, ErrComskipNotFound},
		{"ffmpeg missing", func(c *config.Config) { c.FFmpegPath = "/nonexistent/ffmpeg" }, ErrFfmpegNotFound},
		{"ini missing", func(c *config.Config) { c.ComskipIniPath = "/nonexistent/comskip.ini" }, ErrIniNotFound},
		{"ini is a directory", func(c *config.Config) { c.ComskipIniPath = c.TempRoot }, ErrIniNotFound},
		{"temp root missing", func(c *config.Config) { c.TempRoot = "/nonexistent/tmp" }, ErrTempRootMissing},
		{"ffprobe missing is fine", func(c *config.Config) { c.FFprobePath = "/nonexistent/ffprobe" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(cfg)
			err := CheckDeps(cfg)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("CheckDeps: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("CheckDeps = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunCheck(t *testing.T) {
	cfg := testConfig(t)
	log := &mockLogger{}
	if !RunCheck(cfg, log) {
		t.Fatalf("RunCheck failed: %v", log.lines)
	}
	if !log.has("OK ffmpeg: ffmpeg version test") {
		t.Errorf("version line not logged: %v", log.lines)
	}
	// The fake ffmpeg lists no encoders.
	if !log.has("WARN encoder libx264 missing") {
		t.Errorf("missing encoder warning: %v", log.lines)
	}
}

func TestRunCheck_Missing(t *testing.T) {
	cfg := testConfig(t)
	cfg.ComskipPath = "/nonexistent/comskip"
	log := &mockLogger{}
	if RunCheck(cfg, log) {
		t.Fatal("RunCheck should fail when comskip is missing")
	}
	if !log.has("ERROR comskip not found") {
		t.Errorf("lines = %v", log.lines)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("ffmpeg version 6.1\nbuilt with gcc\n"); got != "ffmpeg version 6.1" {
		t.Errorf("firstLine = %q", got)
	}
}
