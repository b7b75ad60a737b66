package pipeline

// Outcome is the terminal state of a run. Its numeric value is the process
// exit code.
type Outcome int

const (
	Success           Outcome = 0 // Output placed at the destination.
	NotModified       Outcome = 1 // Output nearly identical to the input; nothing placed.
	SanityCheckFailed Outcome = 2 // Output size outside the sane band.
	ExceptionHandled  Outcome = 3 // Setup, parse or cleanup error.
	ToolFailed        Outcome = 4 // comskip or ffmpeg exited non-zero.
)

// ExitUsage is returned for command-line usage errors. It is distinct from
// every Outcome.
const ExitUsage = 64

// ExitCode returns the process exit code for o.
func (o Outcome) ExitCode() int { return int(o) }

// IsFailure reports whether o is a failure outcome, which triggers forensic
// retention of the run directories.
func (o Outcome) IsFailure() bool {
	return o == SanityCheckFailed || o == ExceptionHandled || o == ToolFailed
}

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NotModified:
		return "not modified"
	case SanityCheckFailed:
		return "sanity check failed"
	case ExceptionHandled:
		return "error"
	case ToolFailed:
		return "tool failed"
	default:
		return "unknown"
	}
}
