package pipeline

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies stage failures.
type ErrorKind int

const (
	SetupError          ErrorKind = iota + 1 // Directories, copies, missing source.
	ToolInvocationError                      // comskip or ffmpeg failed.
	ParseError                               // Malformed break list.
	ValidationFailure                        // Output rejected by the size check.
	CleanupError                             // Removing run files or the source failed.
)

func (k ErrorKind) String() string {
	switch k {
	case SetupError:
		return "setup"
	case ToolInvocationError:
		return "tool"
	case ParseError:
		return "parse"
	case ValidationFailure:
		return "validation"
	case CleanupError:
		return "cleanup"
	default:
		return "unknown"
	}
}

// Outcome maps a failure kind to the run outcome.
func (k ErrorKind) Outcome() Outcome {
	switch k {
	case ToolInvocationError:
		return ToolFailed
	case ValidationFailure:
		return SanityCheckFailed
	default:
		return ExceptionHandled
	}
}

// Stage names a pipeline step for error context and logs.
type Stage string

const (
	StagePrepare  Stage = "prepare"
	StageDetect   Stage = "detect"
	StageParse    Stage = "parse"
	StageExtract  Stage = "extract"
	StageConcat   Stage = "concat"
	StageValidate Stage = "validate"
	StagePlace    Stage = "place"
	StageCleanup  Stage = "cleanup"
)

// StageError is returned by every pipeline stage.
type StageError struct {
	Stage Stage
	Kind  ErrorKind
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// stageError wraps err with a message and classifies it.
func stageError(stage Stage, kind ErrorKind, err error, format string, args ...interface{}) *StageError {
	if err == nil {
		err = errors.Errorf(format, args...)
	} else {
		err = errors.Wrapf(err, format, args...)
	}
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

// OutcomeOf maps any error returned by the pipeline to an outcome. Errors
// that are not a *StageError count as ExceptionHandled.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return Success
	}
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind.Outcome()
	}
	return ExceptionHandled
}
