// Ro is a terminal client for consumer Wi-Fi routers running the
// "goform" web interface.
//
// Without a mode flag it shows a live status panel (connected uplink SSID,
// its signal and the current throughput) that redraws in place. Other modes
// show a live list of nearby networks, join one of them as a repeater, or
// reboot and factory-reset the router.
//
// Usage:
//
//	ro [--scan | --reboot | --reset | --connect SSID [PWD]] [flags]
//
// See 'ro --help' for available flags.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/prajwalch/ro/internal/logging"
	"github.com/prajwalch/ro/internal/router"
	"github.com/prajwalch/ro/internal/ui"
	"github.com/prajwalch/ro/internal/version"
)

func main() {
	err := newRootCmd().Execute()
	logging.Sync()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err and any troubleshooting hints for it
func reportError(w io.Writer, err error) {
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}

	_, _ = fmt.Fprintf(w, "error: %v\n", err)
	for _, hint := range router.GetTroubleshootingHint(err) {
		_, _ = fmt.Fprintln(w, ui.TroubleshootingItemStyle.Render("  • "+hint))
	}
	if router.IsValidationError(err) {
		_, _ = fmt.Fprintln(w, "Run 'ro --help' for usage.")
	}
}

// reportedError marks an error whose details were already shown in a result box
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}
