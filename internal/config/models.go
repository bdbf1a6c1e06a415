package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prajwalch/ro/internal/router"
)

// CurrentVersion is the only config file version this build understands
const CurrentVersion = 1

// Environment variables that override the config file
const (
	EnvRouter   = "RO_ROUTER"
	EnvUser     = "RO_USER"
	EnvPassword = "RO_PASSWORD"
)

// Display defaults
const (
	DefaultStatusInterval = time.Second
	DefaultScanInterval   = 8 * time.Second
	DefaultSignalEvery    = 1
	DefaultSSIDFallback   = "soft"
)

// Association defaults
const (
	DefaultMaxAttempts = 30
	DefaultRetryDelay  = 2 * time.Second
)

// Config represents the entire user configuration file.
type Config struct {
	Version     int               `yaml:"version"`
	Router      RouterConfig      `yaml:"router"`
	Display     DisplayConfig     `yaml:"display"`
	Association AssociationConfig `yaml:"association"`
}

// RouterConfig says where the router is and how to log in.
type RouterConfig struct {
	Address  string        `yaml:"address,omitempty"`  // host or host:port; empty uses the default gateway
	Username string        `yaml:"username"`           // web interface user
	Password string        `yaml:"password,omitempty"` // web interface password
	Timeout  time.Duration `yaml:"timeout"`            // per-request HTTP timeout
}

// DisplayConfig controls the live status and scan displays.
type DisplayConfig struct {
	StatusInterval time.Duration `yaml:"status_interval"` // pause between status frames
	ScanInterval   time.Duration `yaml:"scan_interval"`   // pause between scan frames
	SignalEvery    int           `yaml:"signal_every"`    // status polls between signal refreshes
	SSIDFallback   string        `yaml:"ssid_fallback"`   // "soft" shows a placeholder, "hard" fails
}

// AssociationConfig bounds the search for a network to join.
type AssociationConfig struct {
	MaxAttempts          int           `yaml:"max_attempts"`
	RetryDelay           time.Duration `yaml:"retry_delay"`
	Timeout              time.Duration `yaml:"timeout,omitempty"` // zero means no overall limit
	SecondaryKeyFallback string        `yaml:"secondary_key_fallback"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Router: RouterConfig{
			Username: router.DefaultUsername,
			Password: router.DefaultPassword,
			Timeout:  router.DefaultTimeout,
		},
		Display: DisplayConfig{
			StatusInterval: DefaultStatusInterval,
			ScanInterval:   DefaultScanInterval,
			SignalEvery:    DefaultSignalEvery,
			SSIDFallback:   DefaultSSIDFallback,
		},
		Association: AssociationConfig{
			MaxAttempts:          DefaultMaxAttempts,
			RetryDelay:           DefaultRetryDelay,
			SecondaryKeyFallback: router.DefaultSecondaryKey,
		},
	}
}

// ApplyEnv overrides router settings from RO_ROUTER, RO_USER and RO_PASSWORD.
// lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvRouter); ok && v != "" {
		c.Router.Address = v
	}
	if v, ok := lookup(EnvUser); ok && v != "" {
		c.Router.Username = v
	}
	if v, ok := lookup(EnvPassword); ok {
		c.Router.Password = v
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Router.Timeout < 0 {
		errs = append(errs, fmt.Errorf("router.timeout must not be negative (got %s)", c.Router.Timeout))
	}
	if c.Display.StatusInterval <= 0 {
		errs = append(errs, fmt.Errorf("display.status_interval must be positive (got %s)", c.Display.StatusInterval))
	}
	if c.Display.ScanInterval <= 0 {
		errs = append(errs, fmt.Errorf("display.scan_interval must be positive (got %s)", c.Display.ScanInterval))
	}
	if c.Display.SignalEvery < 1 {
		errs = append(errs, fmt.Errorf("display.signal_every must be at least 1 (got %d)", c.Display.SignalEvery))
	}
	switch strings.ToLower(c.Display.SSIDFallback) {
	case "soft", "hard":
	default:
		errs = append(errs, fmt.Errorf("display.ssid_fallback must be soft or hard (got %q)", c.Display.SSIDFallback))
	}
	if c.Association.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("association.max_attempts must be at least 1 (got %d)", c.Association.MaxAttempts))
	}
	if c.Association.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("association.retry_delay must not be negative (got %s)", c.Association.RetryDelay))
	}
	if c.Association.Timeout < 0 {
		errs = append(errs, fmt.Errorf("association.timeout must not be negative (got %s)", c.Association.Timeout))
	}

	return errors.Join(errs...)
}
