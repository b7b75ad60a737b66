package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/comcut/internal/term"
)

var (
	colorMagenta = lipgloss.Color("#FF00FF")
	colorGreen   = lipgloss.Color("#00FF00")
	colorYellow  = lipgloss.Color("#FFFF00")
	colorRed     = lipgloss.Color("#FF0000")

	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorMagenta)
)

const banner = `                                _
  ___ ___  _ __ ___   ___ _   _| |_
 / __/ _ \| '_ ` + "`" + ` _ \ / __| | | | __|
| (_| (_) | | | | | | (__| |_| | |_
 \___\___/|_| |_| |_|\___|\__,_|\__|`

// PrintBanner writes the ASCII art banner to w, styled when colors are on.
func PrintBanner(w io.Writer) {
	if term.Enabled() {
		fmt.Fprintln(w, bannerStyle.Render(banner))
		return
	}
	fmt.Fprintln(w, banner)
}

// Tone selects the color of an outcome line.
type Tone int

const (
	ToneGood Tone = iota
	ToneWarn
	ToneBad
)

// OutcomeLine renders a one-line run verdict such as "SUCCESS (exit 0)".
func OutcomeLine(label string, exitCode int, tone Tone) string {
	text := fmt.Sprintf("%s (exit %d)", label, exitCode)
	if !term.Enabled() {
		return text
	}
	c := colorGreen
	switch tone {
	case ToneWarn:
		c = colorYellow
	case ToneBad:
		c = colorRed
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(text)
}
