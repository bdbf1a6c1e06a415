package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmPhrase must be typed to confirm a dangerous operation
const ConfirmPhrase = "I AGREE"

// ConfirmDangerousOperation displays a warning box on out and reads one line
// from in. It returns true only if the line is ConfirmPhrase.
func ConfirmDangerousOperation(in io.Reader, out io.Writer, title string, warnings []string) bool {
	width := GetTerminalWidth()

	lines := []string{
		"",
		TitleStyle.Render(fmt.Sprintf("%s  WARNING  ─  %s", WarningMarker, title)),
		"",
	}
	for _, warning := range warnings {
		lines = append(lines, "• "+warning)
	}
	lines = append(lines, "")

	box := boxStyle(lipgloss.DoubleBorder(), width).Render(strings.Join(lines, "\n"))
	_, _ = fmt.Fprintln(out, box)
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprint(out, TitleStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", ConfirmPhrase)))

	input, err := bufio.NewReader(in).ReadString('\n')
	_, _ = fmt.Fprintln(out)
	if err != nil && input == "" {
		return false
	}

	if strings.TrimSpace(input) == ConfirmPhrase {
		return true
	}

	_, _ = fmt.Fprintln(out, MutedStyle.Render("  Operation cancelled."))
	return false
}

// ResetConfirmation asks before restoring the router's factory settings
func ResetConfirmation(in io.Reader, out io.Writer, router string) bool {
	return ConfirmDangerousOperation(in, out,
		"FACTORY RESET",
		[]string{
			"This will erase every setting on the router at " + router,
			"The Wi-Fi name, password and admin password return to factory values",
			"You will lose the connection until you rejoin the default network",
		},
	)
}
