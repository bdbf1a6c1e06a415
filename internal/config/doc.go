// Package config provides user configuration for ro.
//
// The configuration is a small YAML file with three sections: where the
// router is and how to log in, how often the live displays refresh, and how
// long the association search may run. Every setting has a default, so the
// file is optional; settings missing from it keep their defaults.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/ro/config.yaml or $HOME/.config/ro/config.yaml
//   - macOS: $HOME/.config/ro/config.yaml
//   - Windows: %LOCALAPPDATA%\ro\config.yaml
//
// # Example
//
//	version: 1
//	router:
//	  address: 192.168.16.1
//	  username: admin
//	  password: admin
//	  timeout: 10s
//	display:
//	  status_interval: 1s
//	  scan_interval: 8s
//	  signal_every: 1
//	  ssid_fallback: soft
//	association:
//	  max_attempts: 30
//	  retry_delay: 2s
//	  secondary_key_fallback: "12345678"
//
// # Precedence
//
// Command-line flags override environment variables (RO_ROUTER, RO_USER,
// RO_PASSWORD), which override the file, which overrides the defaults.
//
// # Security
//
// The router password may be stored here in plain text. The file is written
// with user-only permissions; RO_PASSWORD avoids storing it at all.
package config
