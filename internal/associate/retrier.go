package associate

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prajwalch/ro/internal/logging"
	"github.com/prajwalch/ro/internal/router"
)

// Defaults for Policy
const (
	DefaultMaxAttempts = 30
	DefaultDelay       = 2 * time.Second
)

// State is the retrier's position in its search.
type State int

const (
	// Searching re-scans until the target appears
	Searching State = iota
	// Found means the target was seen and the request was submitted
	Found
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Found:
		return "found"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Target is the network to join and its pre-shared key (empty for open networks).
type Target struct {
	SSID string
	Key  string
}

// Policy bounds the search.
type Policy struct {
	// MaxAttempts is the number of scans before giving up; values below 1 mean 1
	MaxAttempts int

	// Delay is the pause between scans; zero re-scans immediately
	Delay time.Duration

	// Timeout caps the whole search when positive
	Timeout time.Duration

	// SecondaryKeyFallback is used when the router reports no key for its own network
	SecondaryKeyFallback string
}

// DefaultPolicy returns the policy used when nothing is configured
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:          DefaultMaxAttempts,
		Delay:                DefaultDelay,
		SecondaryKeyFallback: router.DefaultSecondaryKey,
	}
}

// Result describes a successful association
type Result struct {
	Entry    router.ScanEntry
	Request  *router.AssociationRequest
	Attempts int
}

// Retrier scans until the target network appears, then submits one
// association request for it.
type Retrier struct {
	Gateway router.Gateway
	Policy  Policy

	// Sleep and Now replace time.Sleep and time.Now when set
	Sleep func(time.Duration)
	Now   func() time.Time

	// OnAttempt is called after every successful scan with the attempt number
	// (starting at 1) and the scan result
	OnAttempt func(attempt int, entries []router.ScanEntry)

	state State
}

// State returns where the last Run stopped
func (r *Retrier) State() State {
	return r.state
}

// Run searches for target and associates with it.
//
// A scan error ends the search immediately. When the target has not appeared
// after Policy.MaxAttempts scans, or Policy.Timeout has passed, Run returns a
// NotFound error. The association request is submitted at most once and its
// error is returned unchanged.
func (r *Retrier) Run(target Target) (*Result, error) {
	sleep, now := r.Sleep, r.Now
	if sleep == nil {
		sleep = time.Sleep
	}
	if now == nil {
		now = time.Now
	}

	maxAttempts := max(r.Policy.MaxAttempts, 1)
	var deadline time.Time
	if r.Policy.Timeout > 0 {
		deadline = now().Add(r.Policy.Timeout)
	}

	r.state = Searching
	attempt := 0
	for attempt < maxAttempts {
		attempt++

		entries, err := r.Gateway.ScanNetworks()
		if err != nil {
			return nil, fmt.Errorf("scan %d of %d: %w", attempt, maxAttempts, err)
		}
		if r.OnAttempt != nil {
			r.OnAttempt(attempt, entries)
		}

		entry, ok := findSSID(entries, target.SSID)
		logging.LogAssociationAttempt(target.SSID, attempt, maxAttempts, ok)
		if ok {
			r.state = Found
			req, err := r.associate(entry, target)
			if err != nil {
				return nil, err
			}
			return &Result{Entry: entry, Request: req, Attempts: attempt}, nil
		}

		if attempt == maxAttempts {
			break
		}
		if !deadline.IsZero() && !now().Add(r.Policy.Delay).Before(deadline) {
			logging.Debug("Association search timed out", zap.String("ssid", target.SSID), zap.Int("attempts", attempt))
			break
		}
		if r.Policy.Delay > 0 {
			sleep(r.Policy.Delay)
		}
	}

	return nil, router.NewNotFoundError(target.SSID, attempt)
}

func (r *Retrier) associate(entry router.ScanEntry, target Target) (*router.AssociationRequest, error) {
	own, err := r.Gateway.SecondaryNetwork()
	if err != nil {
		return nil, err
	}

	fallback := r.Policy.SecondaryKeyFallback
	if fallback == "" {
		fallback = router.DefaultSecondaryKey
	}

	req := router.NewAssociationRequest(entry, target.Key, *own, fallback)
	if err := r.Gateway.Associate(req); err != nil {
		return nil, err
	}
	return req, nil
}

// findSSID returns the first entry whose SSID equals ssid exactly
func findSSID(entries []router.ScanEntry, ssid string) (router.ScanEntry, bool) {
	for _, e := range entries {
		if e.SSID == ssid {
			return e, true
		}
	}
	return router.ScanEntry{}, false
}
