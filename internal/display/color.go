// Package display renders schedules, menus and messages for the terminal.
//
// Styling goes through lipgloss. It respects the NO_COLOR environment
// variable (https://no-color.org/) and is disabled when stdout is not a
// terminal, so piped output stays plain.
package display

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("222"))
)

// enabled reports whether styled output is active.
var enabled bool

func init() {
	enabled = shouldEnable()
}

func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return isTerminal(os.Stdout)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// SetEnabled overrides the auto-detected color state.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

func wrap(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Bold returns text rendered in bold.
func Bold(text string) string { return wrap(boldStyle, text) }

// Dim returns text rendered dimmed.
func Dim(text string) string { return wrap(dimStyle, text) }

// Accent returns text in the accent color, used for the nearest prayer.
func Accent(text string) string { return wrap(accentStyle, text) }

// Success returns text in the confirmation color.
func Success(text string) string { return wrap(successStyle, text) }

// Error returns text in the error color.
func Error(text string) string { return wrap(errorStyle, text) }

// Warn returns text in the warning color.
func Warn(text string) string { return wrap(warnStyle, text) }
