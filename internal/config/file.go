package config

// This file loads the INI config file. Section and key names follow the
// layout DVR post-processing setups already use:
//
//	[Helper Apps]        comskip-path, comskip-ini-path, ffmpeg-path, ffprobe-path
//	[Logging]            logfile-path, console-logging, verbose
//	[File Manipulation]  temp-root, comskip-root, copy-original, save-always,
//	                     save-forensics, keep-original, nice-level
//	[Output]             rename-output, output-suffix, convert-container,
//	                     reencode-on-convert, encoder-preset, encoder-crf
//	[Sanity]             min-segment-bytes, detect-unchanged, similar-low,
//	                     similar-high, sane-low, sane-high

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/ini.v1"
)

// EnvConfigPath names the environment variable consulted when --config is
// not given.
const EnvConfigPath = "COMCUT_CONFIG"

// DefaultConfigName is looked up next to the executable as a last resort.
const DefaultConfigName = "comcut.conf"

type binding struct {
	section string
	key     string
	set     func(c *Config, raw string) error
}

var bindings = []binding{
	{"Helper Apps", "comskip-path", pathField(func(c *Config) *string { return &c.ComskipPath })},
	{"Helper Apps", "comskip-ini-path", pathField(func(c *Config) *string { return &c.ComskipIniPath })},
	{"Helper Apps", "ffmpeg-path", pathField(func(c *Config) *string { return &c.FFmpegPath })},
	{"Helper Apps", "ffprobe-path", pathField(func(c *Config) *string { return &c.FFprobePath })},

	{"Logging", "logfile-path", pathField(func(c *Config) *string { return &c.LogFile })},
	{"Logging", "console-logging", boolField(func(c *Config) *bool { return &c.ConsoleLogging })},
	{"Logging", "verbose", boolField(func(c *Config) *bool { return &c.Verbose })},

	{"File Manipulation", "temp-root", pathField(func(c *Config) *string { return &c.TempRoot })},
	{"File Manipulation", "comskip-root", pathField(func(c *Config) *string { return &c.ComskipRoot })},
	{"File Manipulation", "copy-original", boolField(func(c *Config) *bool { return &c.CopyOriginal })},
	{"File Manipulation", "save-always", boolField(func(c *Config) *bool { return &c.SaveAlways })},
	{"File Manipulation", "save-forensics", boolField(func(c *Config) *bool { return &c.SaveForensics })},
	{"File Manipulation", "keep-original", boolField(func(c *Config) *bool { return &c.KeepOriginal })},
	{"File Manipulation", "nice-level", intField(func(c *Config) *int { return &c.NiceLevel })},

	{"Output", "rename-output", boolField(func(c *Config) *bool { return &c.RenameOutput })},
	{"Output", "output-suffix", rawField(func(c *Config) *string { return &c.OutputSuffix })},
	{"Output", "convert-container", rawField(func(c *Config) *string { return &c.ConvertContainer })},
	{"Output", "reencode-on-convert", boolField(func(c *Config) *bool { return &c.ReencodeOnConvert })},
	{"Output", "encoder-preset", rawField(func(c *Config) *string { return &c.EncoderPreset })},
	{"Output", "encoder-crf", intField(func(c *Config) *int { return &c.EncoderCRF })},

	{"Sanity", "min-segment-bytes", int64Field(func(c *Config) *int64 { return &c.MinSegmentBytes })},
	{"Sanity", "detect-unchanged", boolField(func(c *Config) *bool { return &c.DetectUnchanged })},
	{"Sanity", "similar-low", floatField(func(c *Config) *float64 { return &c.SimilarLow })},
	{"Sanity", "similar-high", floatField(func(c *Config) *float64 { return &c.SimilarHigh })},
	{"Sanity", "sane-low", floatField(func(c *Config) *float64 { return &c.SaneLow })},
	{"Sanity", "sane-high", floatField(func(c *Config) *float64 { return &c.SaneHigh })},
}

// ResolveConfigPath picks the config file: an explicit --config value, then
// $COMCUT_CONFIG, then comcut.conf next to the executable. required is false
// only for the last fallback, whose absence is not an error.
func ResolveConfigPath(explicit string) (path string, required bool) {
	if explicit != "" {
		return ExpandHome(explicit), true
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return ExpandHome(env), true
	}
	return filepath.Join(executableDir(), DefaultConfigName), false
}

// LoadFile applies the settings found in the INI file at path on top of the
// current values. Keys absent from the file keep their current value. When
// required is false a missing file is silently ignored.
func (c *Config) LoadFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}

	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := c.apply(f); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	c.ConfigFile = path
	return nil
}

// apply copies every bound key present in f into c.
func (c *Config) apply(f *ini.File) error {
	for _, b := range bindings {
		sec, err := f.GetSection(b.section)
		if err != nil || !sec.HasKey(b.key) {
			continue
		}
		raw := strings.TrimSpace(sec.Key(b.key).String())
		if err := b.set(c, raw); err != nil {
			return fmt.Errorf("[%s] %s: %w", b.section, b.key, err)
		}
	}
	return nil
}

// --- Field setters ---

func rawField(get func(*Config) *string) func(*Config, string) error {
	return func(c *Config, raw string) error {
		*get(c) = raw
		return nil
	}
}

func pathField(get func(*Config) *string) func(*Config, string) error {
	return func(c *Config, raw string) error {
		*get(c) = ExpandHome(raw)
		return nil
	}
}

func boolField(get func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, raw string) error {
		v, err := ParseBool(raw)
		if err != nil {
			return err
		}
		*get(c) = v
		return nil
	}
}

func intField(get func(*Config) *int) func(*Config, string) error {
	return func(c *Config, raw string) error {
		v, err := cast.ToIntE(raw)
		if err != nil {
			return fmt.Errorf("must be a whole number (got %q)", raw)
		}
		*get(c) = v
		return nil
	}
}

func int64Field(get func(*Config) *int64) func(*Config, string) error {
	return func(c *Config, raw string) error {
		v, err := cast.ToInt64E(raw)
		if err != nil {
			return fmt.Errorf("must be a whole number (got %q)", raw)
		}
		*get(c) = v
		return nil
	}
}

func floatField(get func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, raw string) error {
		v, err := cast.ToFloat64E(raw)
		if err != nil {
			return fmt.Errorf("must be a number (got %q)", raw)
		}
		*get(c) = v
		return nil
	}
}

// ParseBool accepts the spellings INI files commonly use (yes/no, on/off)
// in addition to everything strconv.ParseBool understands.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	v, err := cast.ToBoolE(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
	return v, nil
}
