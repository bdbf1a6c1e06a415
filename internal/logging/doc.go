// Package logging provides structured logging for ro.
//
// This package wraps a global zap logger with convenience functions. It is
// silent by default so that the live status and scan displays own the
// terminal; set RO_LOG_LEVEL to enable output.
//
// # Log Levels
//
//   - Debug: raw router responses, per-poll timing
//   - Info: logins, association attempts, commands sent to the router
//   - Warn: recoverable oddities (signal missing from a scan)
//   - Error: failures that end the program
//
// # Usage
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	}
//	defer logging.Sync()
//
//	logging.Info("Associating", zap.String("ssid", ssid))
//
// # Output
//
// Logs are written to stderr in console format. The live display redraws
// stdout in place, so nothing in this package ever writes to stdout.
package logging
