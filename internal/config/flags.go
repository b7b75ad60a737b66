package config

// This file declares the CLI flags. Flags are captured into a Flags value
// rather than bound to Config directly: the config file is loaded after
// parsing, and a flag only wins over the file when the user actually set it.

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Flags holds raw flag values until [Flags.Apply] copies the changed ones
// into a Config.
type Flags struct {
	ConfigFile string

	Check      bool
	Verbose    bool
	ForceColor bool
	NoColor    bool
	LogFile    string
	Console    bool
	NoConsole  bool

	KeepOriginal  bool
	CopyOriginal  bool
	SaveAlways    bool
	SaveForensics bool

	Convert   string
	Rename    bool
	Reencode  bool
	NiceLevel int
}

// DefineFlags registers every comcut flag on fs and returns the value holder.
func DefineFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}
	defineGeneralFlags(fs, f)
	defineFileFlags(fs, f)
	defineOutputFlags(fs, f)
	return f
}

// defineGeneralFlags registers --config, --check, logging and color flags.
func defineGeneralFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVarP(&f.ConfigFile, "config", "c", "", "Config file (default: $"+EnvConfigPath+" or "+DefaultConfigName+" next to the binary)")
	fs.BoolVar(&f.Check, "check", false, "Check helper tools and exit")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Verbose output (tool command lines and ffmpeg progress)")
	fs.BoolVar(&f.ForceColor, "color", false, "Force colored console logs")
	fs.BoolVar(&f.NoColor, "no-color", false, "Disable colored console logs")
	fs.StringVarP(&f.LogFile, "log", "l", "", "Append logs to file")
	fs.BoolVar(&f.Console, "console", false, "Echo logs to the console")
	fs.BoolVar(&f.NoConsole, "no-console", false, "Do not echo logs to the console (needs --log)")
}

// defineFileFlags registers the retention policy flags.
func defineFileFlags(fs *pflag.FlagSet, f *Flags) {
	fs.BoolVar(&f.KeepOriginal, "keep-original", false, "Keep the source file when the output is written elsewhere")
	fs.BoolVar(&f.CopyOriginal, "copy-original", false, "Work on a copy of the source inside the run directory")
	fs.BoolVar(&f.SaveAlways, "save-always", false, "Never delete run directories")
	fs.BoolVar(&f.SaveForensics, "save-forensics", false, "Keep run directories when processing fails")
	fs.IntVar(&f.NiceLevel, "nice", 0, "Process niceness (-20..19, 0 leaves it unchanged)")
}

// defineOutputFlags registers destination naming and codec flags.
func defineOutputFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.Convert, "convert", "", "Convert the output to another container (e.g. mkv)")
	fs.BoolVar(&f.Rename, "rename", false, "Write a renamed \"no commercials\" variant instead of replacing")
	fs.BoolVar(&f.Reencode, "reencode", false, "Re-encode video when joining segments")
}

// Apply copies every flag the user set on the command line into cfg.
func (f *Flags) Apply(fs *pflag.FlagSet, cfg *Config) {
	changed := fs.Changed

	if changed("check") {
		cfg.CheckOnly = f.Check
	}
	if changed("verbose") {
		cfg.Verbose = f.Verbose
	}
	if f.NoColor {
		cfg.ColorMode = ColorNever
	} else if f.ForceColor {
		cfg.ColorMode = ColorAlways
	}
	if changed("log") {
		cfg.LogFile = ExpandHome(f.LogFile)
	}
	if f.NoConsole {
		cfg.ConsoleLogging = false
	} else if f.Console {
		cfg.ConsoleLogging = true
	}

	if changed("keep-original") {
		cfg.KeepOriginal = f.KeepOriginal
	}
	if changed("copy-original") {
		cfg.CopyOriginal = f.CopyOriginal
	}
	if changed("save-always") {
		cfg.SaveAlways = f.SaveAlways
	}
	if changed("save-forensics") {
		cfg.SaveForensics = f.SaveForensics
	}
	if changed("nice") {
		cfg.NiceLevel = f.NiceLevel
	}

	if changed("convert") {
		cfg.ConvertContainer = f.Convert
	}
	if changed("rename") {
		cfg.RenameOutput = f.Rename
	}
	if changed("reencode") {
		cfg.ForceReencode = f.Reencode
	}
}

// ParsePositionalArgs sets SourcePath and OutputArg from the positional args.
// CheckOnly mode accepts no positional args.
func ParsePositionalArgs(args []string, cfg *Config) error {
	if cfg.CheckOnly && len(args) == 0 {
		return nil
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("need a source file and an optional output path (got %d args)", len(args))
	}
	cfg.SourcePath = args[0]
	if len(args) == 2 {
		cfg.OutputArg = args[1]
	}
	return nil
}
