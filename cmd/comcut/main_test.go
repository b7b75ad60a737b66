package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/comcut/internal/pipeline"
)

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"too many args", []string{"a.ts", "out", "extra"}},
		{"unknown flag", []string{"--bogus", "a.ts"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != pipeline.ExitUsage {
				t.Errorf("exit = %d, want %d", got, pipeline.ExitUsage)
			}
			if !strings.Contains(stderr.String(), "Usage:") {
				t.Errorf("usage not printed:\n%s", stderr.String())
			}
		})
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if got := run([]string{"--version"}, &stdout, &stderr); got != 0 {
		t.Errorf("exit = %d, want 0", got)
	}
	if !strings.Contains(stdout.String(), version) {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestRun_ConfigErrors(t *testing.T) {
	t.Setenv("COMCUT_CONFIG", "")
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.conf")
	if err := os.WriteFile(bad, []byte("[Sanity]\nsane-low = lots\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing explicit config", []string{"--config", filepath.Join(dir, "missing.conf"), "a.ts"}},
		{"bad config value", []string{"--config", bad, "a.ts"}},
		{"invalid nice level", []string{"--nice", "99", "a.ts"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != pipeline.ExceptionHandled.ExitCode() {
				t.Errorf("exit = %d, want %d (stderr: %s)", got, pipeline.ExceptionHandled.ExitCode(), stderr.String())
			}
		})
	}
}

func TestRun_MissingTools(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "comcut.conf")
	body := "[Helper Apps]\ncomskip-path = /nonexistent/comskip\n" +
		"[Logging]\nlogfile-path = " + filepath.Join(dir, "comcut.log") + "\nconsole-logging = no\n"
	if err := os.WriteFile(conf, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "show.ts")
	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if got := run([]string{"-c", conf, src}, &stdout, &stderr); got != pipeline.ExceptionHandled.ExitCode() {
		t.Errorf("exit = %d, want %d", got, pipeline.ExceptionHandled.ExitCode())
	}
	if data, _ := os.ReadFile(src); string(data) != "data" {
		t.Error("source modified")
	}
}
