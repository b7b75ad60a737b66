package ffmpeg

import "regexp"

// Pre-compiled patterns for classifying ffmpeg stderr into a one-line hint
// for the log. Checked in order by [Diagnose]; the first match wins.
var diagnoses = []struct {
	re   *regexp.Regexp
	hint string
}{
	{regexp.MustCompile(`(?i)No space left on device`),
		"disk full in the run or destination directory"},
	{regexp.MustCompile(`(?i)Permission denied`),
		"permission denied on an input or output path"},
	{regexp.MustCompile(`(?i)Impossible to open|Unsafe file name`),
		"a manifest entry could not be opened"},
	{regexp.MustCompile(`(?i)No such file or directory`),
		"an input file is missing"},
	{regexp.MustCompile(`(?i)Invalid data found when processing input|moov atom not found`),
		"the source is truncated or not a media file"},
	{regexp.MustCompile(`(?i)Unknown encoder|Encoder not found`),
		"this ffmpeg build lacks the requested encoder"},
	{regexp.MustCompile(`(?i)Could not find tag for codec|codec not currently supported in container`),
		"a stream codec is not supported by the output container"},
	{regexp.MustCompile(`(?i)Non-monotonous DTS|non monotonically increasing dts|DTS .*out of order|Timestamps are unset`),
		"timestamp discontinuity at a segment boundary"},
}

// Diagnose returns a short hint describing the most likely cause of a
// failure given ffmpeg's stderr, or "" when nothing is recognized.
func Diagnose(stderr string) string {
	for _, d := range diagnoses {
		if d.re.MatchString(stderr) {
			return d.hint
		}
	}
	return ""
}
