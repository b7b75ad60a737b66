package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/comcut/internal/comskip"
	"github.com/backmassage/comcut/internal/config"
	"github.com/backmassage/comcut/internal/display"
	"github.com/backmassage/comcut/internal/edl"
	"github.com/backmassage/comcut/internal/ffmpeg"
	"github.com/backmassage/comcut/internal/logging"
	"github.com/backmassage/comcut/internal/probe"
)

// ProbeFunc inspects a recording. A nil ProbeFunc disables probing.
type ProbeFunc func(ctx context.Context, path string) (*probe.ProbeResult, error)

// Pipeline runs recordings through commercial removal with a fixed
// configuration.
type Pipeline struct {
	cfg    *config.Config
	log    *logging.Logger
	runner ffmpeg.CommandRunner
	probe  ProbeFunc
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithProber replaces the ffprobe-based prober. Pass nil to disable probing.
func WithProber(f ProbeFunc) Option {
	return func(p *Pipeline) { p.probe = f }
}

// New returns a Pipeline that runs external tools through runner. Probing
// uses cfg.FFprobePath unless it is empty or overridden with WithProber.
func New(cfg *config.Config, log *logging.Logger, runner ffmpeg.CommandRunner, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, log: log, runner: runner}
	if cfg.FFprobePath != "" {
		ffprobe := cfg.FFprobePath
		p.probe = func(ctx context.Context, path string) (*probe.ProbeResult, error) {
			return probe.Probe(ctx, ffprobe, path)
		}
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Result is the outcome of one run.
type Result struct {
	Outcome Outcome
	Err     error // The stage error behind a failure outcome, if any.
	Report  RunReport
}

// ExitCode returns the process exit code for the run.
func (r Result) ExitCode() int { return r.Outcome.ExitCode() }

// Run processes rc.SourcePath end to end and applies the retention policy.
// It never retries a stage.
func (p *Pipeline) Run(ctx context.Context, rc *RunContext) Result {
	start := time.Now()
	var report RunReport

	p.log.Info("Processing %s", rc.SourcePath)
	p.log.Debug("Run %s: work %s, detector %s, destination %s", rc.RunID, rc.WorkDir, rc.DetectorDir, rc.DestPath)

	outcome, err := p.process(ctx, rc, &report)
	if err != nil && ctx.Err() != nil {
		p.log.Warn("Interrupted")
		outcome = ExceptionHandled
		err = stageError(stageOf(err), SetupError, err, "interrupted")
	}
	if err != nil {
		p.logFailure(err)
	}

	if cerr := p.cleanup(rc, outcome); cerr != nil {
		if outcome == Success {
			outcome, err = ExceptionHandled, cerr
		}
	}

	report.Elapsed = time.Since(start)
	p.logSummary(outcome, &report)
	return Result{Outcome: outcome, Err: err, Report: report}
}

// process runs every stage up to placement. It returns the outcome and,
// for failures, the stage error.
func (p *Pipeline) process(ctx context.Context, rc *RunContext, report *RunReport) (Outcome, error) {
	// --- Prepare ---
	if err := p.prepare(rc, report); err != nil {
		return OutcomeOf(err), err
	}

	// --- Detect ---
	det := &comskip.Detector{Path: p.cfg.ComskipPath, IniPath: p.cfg.ComskipIniPath, Runner: p.runner}
	p.log.Info("Detecting commercials")
	p.log.Debug("%s %v", det.Path, det.Args(rc.DetectorDir, rc.WorkingSource))
	edlPath, err := det.Detect(ctx, rc.DetectorDir, rc.WorkingSource)
	if err != nil {
		se := stageError(StageDetect, ToolInvocationError, err, "commercial detection")
		return OutcomeOf(se), se
	}

	// --- Parse ---
	segs, err := p.parse(ctx, rc, edlPath, report)
	if err != nil {
		return OutcomeOf(err), err
	}

	// --- Extract ---
	x := &Extractor{
		FFmpegPath: p.cfg.FFmpegPath,
		Runner:     p.runner,
		MinBytes:   p.cfg.MinSegmentBytes,
		Verbose:    p.cfg.Verbose,
		Log:        p.log,
	}
	p.log.Info("Extracting %d segment(s)", len(segs))
	m, err := x.Extract(ctx, rc.WorkingSource, segs, rc.SegmentPath)
	if err != nil {
		return OutcomeOf(err), err
	}
	report.Joined = m.Len()

	// --- Concatenate ---
	c := &Concatenator{
		FFmpegPath: p.cfg.FFmpegPath,
		Runner:     p.runner,
		Codec:      chooseCodec(p.cfg.ForceReencode, p.cfg.ReencodeOnConvert, filepath.Ext(rc.SourcePath), filepath.Ext(rc.DestPath)),
		Encode:     ffmpeg.EncodeOptions{Preset: p.cfg.EncoderPreset, CRF: p.cfg.EncoderCRF},
		Verbose:    p.cfg.Verbose,
		Log:        p.log,
	}
	p.log.Info("Joining %d segment(s), %s (%s)", m.Len(), display.FormatBytes(m.TotalBytes()), c.Codec)
	if err := c.Concat(ctx, m, rc.ManifestPath, rc.OutputPath); err != nil {
		return OutcomeOf(err), err
	}

	// --- Validate ---
	fi, err := os.Stat(rc.OutputPath)
	if err != nil {
		se := stageError(StageValidate, ToolInvocationError, err, "ffmpeg reported success but wrote no output")
		return OutcomeOf(se), se
	}
	report.OutputBytes = fi.Size()
	v := Validate(report.SourceBytes, report.OutputBytes, p.bands())
	report.Ratio = v.Ratio
	switch v.Outcome {
	case NotModified:
		p.log.Warn("Output is %s of the input; leaving the original alone", display.FormatRatio(v.Ratio))
		return NotModified, nil
	case SanityCheckFailed:
		se := stageError(StageValidate, ValidationFailure, nil,
			"output is %s of the input (%s vs %s), outside the sane band (%g, %g)",
			display.FormatRatio(v.Ratio), display.FormatBytes(report.OutputBytes),
			display.FormatBytes(report.SourceBytes), p.cfg.SaneLow, p.cfg.SaneHigh)
		return SanityCheckFailed, se
	}

	// --- Place ---
	if err := placeOutput(rc); err != nil {
		return OutcomeOf(err), err
	}
	p.log.Success("Wrote %s", rc.DestPath)
	return Success, nil
}

// prepare checks the source, creates the run directories and, when
// configured, copies the source into the run directory.
func (p *Pipeline) prepare(rc *RunContext, report *RunReport) error {
	size, err := statSource(rc.SourcePath)
	if err != nil {
		return stageError(StagePrepare, SetupError, err, "source")
	}
	report.SourceBytes = size
	if !IsMediaFile(rc.SourcePath) {
		p.log.Warn("Unrecognized media extension %q, continuing", filepath.Ext(rc.SourcePath))
	}

	for _, dir := range []string{filepath.Dir(rc.OutputPath), rc.DetectorDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stageError(StagePrepare, SetupError, err, "create %s", dir)
		}
	}

	if rc.WorkingSource != rc.SourcePath {
		if err := os.MkdirAll(filepath.Dir(rc.WorkingSource), 0o755); err != nil {
			return stageError(StagePrepare, SetupError, err, "create input dir")
		}
		p.log.Info("Copying source (%s) into %s", display.FormatBytes(size), rc.WorkDir)
		if err := copyFile(rc.SourcePath, rc.WorkingSource); err != nil {
			return stageError(StagePrepare, SetupError, err, "copy source")
		}
	}
	return nil
}

// parse reads the break list and derives keep-segments. A missing break
// list means nothing was detected and the whole recording is kept.
func (p *Pipeline) parse(ctx context.Context, rc *RunContext, edlPath string, report *RunReport) ([]edl.KeepSegment, error) {
	breaks, found, err := edl.ParseFile(edlPath)
	if err != nil {
		var pe *edl.ParseError
		if errors.As(err, &pe) {
			return nil, stageError(StageParse, ParseError, err, "break list %s", edlPath)
		}
		return nil, stageError(StageParse, SetupError, err, "read break list %s", edlPath)
	}
	if !found {
		p.log.Info("No break list written; keeping the whole recording")
	}
	if len(breaks) > 0 && breaks[0].Start == 0 {
		p.log.Info("Start of file is junk")
	}

	segs := edl.KeepSegments(breaks)
	report.Breaks = len(breaks)
	report.Segments = len(segs)
	report.RemovedSeconds = edl.RemovedSeconds(breaks)
	p.log.Info("Found %d break(s), %s to remove", len(breaks), display.FormatSeconds(report.RemovedSeconds))
	for i, s := range segs {
		p.log.Debug("  keep %d: %s", i, s)
	}

	if p.probe != nil {
		pr, err := p.probe(ctx, rc.WorkingSource)
		if err != nil {
			p.log.Warn("Probe failed: %v", err)
		} else {
			report.SourceSeconds = pr.Format.Duration
			p.log.Info("Source: %s, %s", pr.Summary(), display.FormatSeconds(pr.Format.Duration))
			if f := report.RemovedFraction(); f >= 0 {
				p.log.Info("Keeping %s (%s removed)",
					display.FormatSeconds(report.SourceSeconds-report.RemovedSeconds), display.FormatRatio(f))
			}
		}
	}
	return segs, nil
}

func (p *Pipeline) bands() Bands {
	return Bands{
		SimilarLow:      p.cfg.SimilarLow,
		SimilarHigh:     p.cfg.SimilarHigh,
		SaneLow:         p.cfg.SaneLow,
		SaneHigh:        p.cfg.SaneHigh,
		DetectUnchanged: p.cfg.DetectUnchanged,
	}
}

// cleanup applies the retention policy for outcome and, after a success
// that wrote elsewhere, deletes the source unless keep-original is set.
// Every failure is logged; the first is returned as a CleanupError.
func (p *Pipeline) cleanup(rc *RunContext, outcome Outcome) error {
	var first error
	fail := func(err error, format string, args ...interface{}) {
		se := stageError(StageCleanup, CleanupError, err, format, args...)
		p.log.Error("%v", se)
		if first == nil {
			first = se
		}
	}

	dirs := []string{rc.WorkDir}
	if rc.SeparateDetectorDir() {
		dirs = append(dirs, rc.DetectorDir)
	}

	switch {
	case p.cfg.SaveAlways:
		p.log.Info("Keeping run files (save-always): %v", dirs)
	case outcome.IsFailure() && p.cfg.SaveForensics:
		p.log.Warn("Keeping run files for inspection: %v", dirs)
	default:
		for _, d := range dirs {
			if err := os.RemoveAll(d); err != nil {
				fail(err, "remove %s", d)
			}
		}
	}

	if outcome == Success && !p.cfg.KeepOriginal && !rc.ReplacesSource() {
		switch err := os.Remove(rc.SourcePath); {
		case err == nil:
			p.log.Info("Removed source %s", rc.SourcePath)
		case !os.IsNotExist(err):
			fail(err, "remove source %s", rc.SourcePath)
		}
	}
	return first
}

// --- Logging helpers ---

func (p *Pipeline) logFailure(err error) {
	p.log.Error("%v", err)

	var pe *edl.ParseError
	if errors.As(err, &pe) {
		p.log.Error("  line %d: %q", pe.Line, pe.Text)
	}

	var ee *ffmpeg.ExitError
	if !errors.As(err, &ee) {
		return
	}
	if p.log.Verbose() {
		p.log.Debug("Command: %s", ee.CommandLine())
	} else {
		p.log.Info("Rerun with --verbose to log the full %s command", filepath.Base(ee.Tool))
	}
	if lines := ffmpeg.StderrTail(err, 20); len(lines) > 0 {
		p.log.Error("Last %s output:", filepath.Base(ee.Tool))
		for _, l := range lines {
			p.log.Error("  %s", l)
		}
	}
	if hint := ffmpeg.Diagnose(ee.Stderr); hint != "" {
		p.log.Warn("Likely cause: %s", hint)
	}
}

func (p *Pipeline) logSummary(outcome Outcome, r *RunReport) {
	p.log.Fields("Run finished", map[string]interface{}{
		"outcome":  outcome.String(),
		"exit":     outcome.ExitCode(),
		"breaks":   r.Breaks,
		"segments": r.Segments,
		"joined":   r.Joined,
		"elapsed":  r.Elapsed.Round(time.Millisecond).String(),
	})
	if r.OutputBytes == 0 {
		return
	}
	msg := "Input %s -> output %s (%s, %s)"
	args := []interface{}{
		display.FormatBytes(r.SourceBytes), display.FormatBytes(r.OutputBytes),
		display.FormatRatio(r.Ratio), display.FormatBytesWithSign(-r.SpaceSaved()),
	}
	if outcome == Success {
		p.log.Success(msg, args...)
	} else {
		p.log.Info(msg, args...)
	}
}

func stageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return StagePrepare
}
