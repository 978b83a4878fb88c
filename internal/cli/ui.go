package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by the command output and the preview.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleNumber    = StyleHighlight
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)

	styleMuted   = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = styleMuted.Width(12)
)

var styleSpinner = StyleHighlight

// report writes human-readable command results. Machine-readable output
// (JSON, DOT, raw surfaces) bypasses it.
type report struct {
	w io.Writer
}

func newReport(w io.Writer) report { return report{w: w} }

func (r report) line(icon lipgloss.Style, mark, msg string) {
	fmt.Fprintln(r.w, icon.Render(mark)+" "+msg)
}

func (r report) success(format string, args ...any) {
	r.line(StyleSuccess, "✓", fmt.Sprintf(format, args...))
}

func (r report) info(format string, args ...any) {
	r.line(styleMuted, "›", fmt.Sprintf(format, args...))
}

// detail prints an indented secondary line.
func (r report) detail(format string, args ...any) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (r report) file(path string) {
	fmt.Fprintln(r.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (r report) field(key, value string) {
	fmt.Fprintln(r.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// stats prints node count, measured size and whether the result came from
// the cache. Zero values are left out.
func (r report) stats(nodes int, measured string, cached bool) {
	var parts []string
	if nodes > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", nodes))
	}
	if measured != "" {
		parts = append(parts, "measured "+measured)
	}
	status := styleMuted.Render("fresh")
	if cached {
		status = StyleSuccess.Render("cached")
	}
	parts = append(parts, status)

	sep := StyleDim.Render(" · ")
	for i, p := range parts[:len(parts)-1] {
		parts[i] = StyleDim.Render(p)
	}
	fmt.Fprintln(r.w, "  "+strings.Join(parts, sep))
}

func (r report) next(description, command string) {
	fmt.Fprintln(r.w, StyleDim.Render(description+":")+" "+styleCommand.Render(command))
}
