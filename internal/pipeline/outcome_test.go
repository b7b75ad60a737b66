package pipeline

import (
	"errors"
	"fmt"
	"testing"
)

func TestOutcomeExitCodes(t *testing.T) {
	tests := []struct {
		o       Outcome
		code    int
		failure bool
	}{
		{Success, 0, false},
		{NotModified, 1, false},
		{SanityCheckFailed, 2, true},
		{ExceptionHandled, 3, true},
		{ToolFailed, 4, true},
	}
	seen := map[int]bool{ExitUsage: true}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			if got := tt.o.ExitCode(); got != tt.code {
				t.Errorf("ExitCode = %d, want %d", got, tt.code)
			}
			if got := tt.o.IsFailure(); got != tt.failure {
				t.Errorf("IsFailure = %v, want %v", got, tt.failure)
			}
			if seen[tt.code] {
				t.Errorf("exit code %d reused", tt.code)
			}
			seen[tt.code] = true
		})
	}
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil", nil, Success},
		{"setup", stageError(StagePrepare, SetupError, errors.New("no such file"), "source"), ExceptionHandled},
		{"tool", stageError(StageDetect, ToolInvocationError, errors.New("exit status 1"), "comskip"), ToolFailed},
		{"parse", stageError(StageParse, ParseError, errors.New("bad line"), "edl"), ExceptionHandled},
		{"validation", stageError(StageValidate, ValidationFailure, nil, "ratio %g", 0.3), SanityCheckFailed},
		{"cleanup", stageError(StageCleanup, CleanupError, errors.New("busy"), "remove"), ExceptionHandled},
		{"wrapped", fmt.Errorf("run: %w", stageError(StageConcat, ToolInvocationError, errors.New("x"), "join")), ToolFailed},
		{"plain", errors.New("unexpected"), ExceptionHandled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutcomeOf(tt.err); got != tt.want {
				t.Errorf("OutcomeOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStageError(t *testing.T) {
	cause := errors.New("exit status 1")
	se := stageError(StageExtract, ToolInvocationError, cause, "extract segment %d", 2)
	if !errors.Is(se, cause) {
		t.Error("cause not reachable through StageError")
	}
	if got := se.Error(); got != "extract: extract segment 2: exit status 1" {
		t.Errorf("Error() = %q", got)
	}

	noCause := stageError(StageConcat, ValidationFailure, nil, "no segments")
	if got := noCause.Error(); got != "concat: no segments" {
		t.Errorf("Error() = %q", got)
	}
}
