// Command comcut removes commercial breaks from a recording. It is meant to
// run as a DVR post-processing hook: the exit code reports the outcome and
// the cut file replaces (or sits beside) the original.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/backmassage/comcut/internal/check"
	"github.com/backmassage/comcut/internal/config"
	"github.com/backmassage/comcut/internal/display"
	"github.com/backmassage/comcut/internal/ffmpeg"
	"github.com/backmassage/comcut/internal/logging"
	"github.com/backmassage/comcut/internal/pipeline"
	"github.com/backmassage/comcut/internal/sysprio"
)

// version and commit are set at build time via -ldflags (e.g. Makefile).
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. Usage errors
// return pipeline.ExitUsage; everything else maps to a pipeline outcome.
func run(args []string, stdout, stderr io.Writer) int {
	code := 0
	cmd := newRootCmd(&code, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "comcut: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return pipeline.ExitUsage
	}
	return code
}

func newRootCmd(code *int, stderr io.Writer) *cobra.Command {
	var flags *config.Flags

	cmd := &cobra.Command{
		Use:   "comcut [flags] <source> [output]",
		Short: "Remove commercials from a recording",
		Long: "comcut runs comskip on a recording, cuts out the detected breaks with ffmpeg\n" +
			"and replaces the original once the result passes a size sanity check.\n\n" +
			"Exit codes: 0 success, 1 not modified, 2 sanity check failed,\n" +
			"3 error, 4 comskip/ffmpeg failed, 64 usage.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.Check {
				return cobra.MaximumNArgs(2)(cmd, args)
			}
			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			path, required := config.ResolveConfigPath(flags.ConfigFile)
			if err := cfg.LoadFile(path, required); err != nil {
				fmt.Fprintf(stderr, "comcut: %v\n", err)
				*code = pipeline.ExceptionHandled.ExitCode()
				return nil
			}
			flags.Apply(cmd.Flags(), &cfg)
			if err := config.ParsePositionalArgs(args, &cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(stderr, "comcut: %v\n", err)
				*code = pipeline.ExceptionHandled.ExitCode()
				return nil
			}
			*code = execute(cmd, &cfg, stderr)
			return nil
		},
	}
	flags = config.DefineFlags(cmd.Flags())
	return cmd
}

// execute runs either --check or the pipeline with a validated config.
func execute(cmd *cobra.Command, cfg *config.Config, stderr io.Writer) int {
	runID := uuid.NewString()
	log, err := logging.NewLogger(cfg, runID)
	if err != nil {
		fmt.Fprintf(stderr, "comcut: %v\n", err)
		return pipeline.ExceptionHandled.ExitCode()
	}
	defer log.Close()

	if cfg.ConsoleLogging {
		display.PrintBanner(stderr)
	}
	log.Info("comcut %s (%s)", version, commit)
	if cfg.ConfigFile != "" {
		log.Debug("Config: %s", cfg.ConfigFile)
	}

	if err := sysprio.Apply(cfg.NiceLevel); err != nil {
		log.Warn("Cannot set nice level %d: %v", cfg.NiceLevel, err)
	}

	// 1. System check only.
	if cfg.CheckOnly {
		if check.RunCheck(cfg, log) {
			return 0
		}
		return 1
	}

	// 2. Fail fast when a helper tool is missing.
	if err := check.CheckDeps(cfg); err != nil {
		log.Error("%v", err)
		return pipeline.ExceptionHandled.ExitCode()
	}

	// 3. Run, killing child tools on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rc, err := pipeline.NewRunContext(cfg, runID)
	if err != nil {
		log.Error("%v", err)
		return pipeline.ExceptionHandled.ExitCode()
	}
	res := pipeline.New(cfg, log, ffmpeg.ExecRunner{Verbose: cfg.Verbose}).Run(ctx, rc)

	if cfg.ConsoleLogging {
		fmt.Fprintln(stderr, display.OutcomeLine(strings.ToUpper(res.Outcome.String()), res.ExitCode(), tone(res.Outcome)))
	}
	return res.ExitCode()
}

func tone(o pipeline.Outcome) display.Tone {
	switch {
	case o == pipeline.Success:
		return display.ToneGood
	case o.IsFailure():
		return display.ToneBad
	default:
		return display.ToneWarn
	}
}
