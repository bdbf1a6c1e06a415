// Package ui provides terminal output components for the ro CLI.
//
// Output is plain text with bold and faint emphasis from lipgloss; no colors
// are used, and emphasis disappears when stdout is not a terminal.
//
// # Components
//
//   - Result: success, warning and failure boxes for one-shot commands
//     (reboot, reset, connect)
//   - Printer: writes results to a writer
//   - ConfirmDangerousOperation: warning box plus typed confirmation, used
//     before a factory reset
//   - AssociationProgress: a single-line progress bar redrawn while the
//     association search runs
//   - ReadPassword: hidden pre-shared key prompt
//
// The styles in this package are also used by the live display for its
// headers, labels and values.
//
// # Logging Integration
//
// Logging is controlled via the RO_LOG_LEVEL environment variable and goes to
// stderr, so it never mixes with the components rendered here.
package ui
