package pipeline

import "time"

// RunReport collects what happened during one run for the summary log.
type RunReport struct {
	SourceBytes    int64
	OutputBytes    int64
	Ratio          float64
	SourceSeconds  float64 // From ffprobe; 0 when unknown.
	RemovedSeconds float64
	Breaks         int
	Segments       int // Keep-segments derived from the break list.
	Joined         int // Segment files that made it into the manifest.
	Elapsed        time.Duration
}

// SpaceSaved returns the byte difference between source and output.
// Positive means the output is smaller.
func (r *RunReport) SpaceSaved() int64 {
	return r.SourceBytes - r.OutputBytes
}

// RemovedFraction returns the share of the program removed as breaks, or
// -1 when the source duration is unknown.
func (r *RunReport) RemovedFraction() float64 {
	if r.SourceSeconds <= 0 {
		return -1
	}
	return r.RemovedSeconds / r.SourceSeconds
}
