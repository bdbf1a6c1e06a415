package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Emphasis is limited to bold and faint so the output stays readable on any
// terminal palette. lipgloss drops both when stdout is not a terminal.
var (
	// HeadingStyle is for column headers of the scan list
	HeadingStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle is for the labels of the status display ("SSID:", "Speed:")
	LabelStyle = lipgloss.NewStyle().Faint(true)

	// ValueStyle is for headline values of the status display
	ValueStyle = lipgloss.NewStyle().Bold(true)

	// MutedStyle is for secondary information
	MutedStyle = lipgloss.NewStyle().Faint(true)

	// TitleStyle is for result box titles
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// ResultKeyStyle is for result detail keys
	ResultKeyStyle = lipgloss.NewStyle().
			Faint(true).
			Width(12)

	// ResultValueStyle is for result detail values
	ResultValueStyle = lipgloss.NewStyle()

	// TroubleshootingItemStyle is for troubleshooting bullet points
	TroubleshootingItemStyle = lipgloss.NewStyle().Faint(true)
)

// Status markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "!"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// boxStyle returns the border style for result boxes
func boxStyle(border lipgloss.Border, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(border).
		Width(width-2).
		Padding(0, 2)
}
