package live

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/prajwalch/ro/internal/logging"
	"github.com/prajwalch/ro/internal/router"
	"github.com/prajwalch/ro/internal/ui"
)

// Placeholders shown in the status display
const (
	UnavailableText  = "FAILED TO RETRIEVE"
	NotConnectedText = "NOT CONNECTED"
	NoSignalText     = "-"
	HiddenSSIDText   = "<hidden>"
)

// Minimum column widths of the scan list
const (
	minSSIDColumn     = 30
	minSecurityColumn = 12
	channelColumn     = 4
	statusLabelWidth  = 8
)

// FallbackPolicy decides what happens when the connected SSID cannot be read.
type FallbackPolicy int

const (
	// FallbackSoft shows UnavailableText and keeps polling
	FallbackSoft FallbackPolicy = iota
	// FallbackHard ends the loop with the read error
	FallbackHard
)

// String returns the configuration spelling of the policy
func (p FallbackPolicy) String() string {
	switch p {
	case FallbackSoft:
		return "soft"
	case FallbackHard:
		return "hard"
	default:
		return fmt.Sprintf("FallbackPolicy(%d)", int(p))
	}
}

// ParseFallbackPolicy parses "soft" or "hard". An empty string means soft.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "soft":
		return FallbackSoft, nil
	case "hard":
		return FallbackHard, nil
	default:
		return FallbackSoft, fmt.Errorf("invalid ssid fallback %q (want soft or hard)", s)
	}
}

// ListView builds scan-list frames: a header plus one line per network.
type ListView struct {
	Gateway router.Gateway
}

// Fetch scans once and returns the resulting frame
func (v *ListView) Fetch() (Frame, error) {
	entries, err := v.Gateway.ScanNetworks()
	if err != nil {
		return nil, err
	}
	return ScanFrame(entries), nil
}

// ScanFrame lays out entries as aligned columns under a header line.
func ScanFrame(entries []router.ScanEntry) Frame {
	ssidWidth := minSSIDColumn
	securityWidth := minSecurityColumn
	for _, e := range entries {
		ssidWidth = max(ssidWidth, runewidth.StringWidth(displaySSID(e.SSID)))
		securityWidth = max(securityWidth, runewidth.StringWidth(ui.Printable(e.Security)))
	}

	row := func(ssid, channel, security, signal string) string {
		return runewidth.FillRight(ssid, ssidWidth) + " " +
			runewidth.FillRight(channel, channelColumn) + " " +
			runewidth.FillRight(security, securityWidth) + " " +
			signal
	}

	frame := make(Frame, 0, len(entries)+1)
	frame = append(frame, ui.HeadingStyle.Render(row("SSID", "CH", "SECURITY", "SIGNAL")))
	for _, e := range entries {
		frame = append(frame, row(displaySSID(e.SSID), ui.Printable(e.Channel), ui.Printable(e.Security), ui.Printable(e.Signal)))
	}
	return frame
}

// displaySSID returns ssid as it may appear on a frame line. SSIDs are
// arbitrary octets chosen by whoever runs the access point.
func displaySSID(ssid string) string {
	if ssid == "" {
		return HiddenSSIDText
	}
	return ui.Printable(ssid)
}

// StatusView builds the fixed three-line status frame (SSID, Signal, Speed).
//
// Throughput is fetched on every call. The connected SSID and its signal are
// refreshed every SignalEvery calls; when the SSID is missing from a scan the
// last known signal is kept.
type StatusView struct {
	Gateway router.Gateway

	// SignalEvery is the number of polls between signal refreshes (<1 means every poll)
	SignalEvery int

	// Fallback applies when the connected SSID cannot be read
	Fallback FallbackPolicy

	polls     int
	ssid      string
	connected bool
	signal    string
}

// Fetch polls the gateway and returns the next status frame
func (v *StatusView) Fetch() (Frame, error) {
	every := max(v.SignalEvery, 1)
	if v.polls%every == 0 {
		if err := v.refreshSignal(); err != nil {
			return nil, err
		}
	}
	v.polls++

	info, err := v.Gateway.FetchStatus()
	if err != nil {
		return nil, err
	}

	return StatusFrame(v.ssidText(), v.signalText(), info), nil
}

func (v *StatusView) refreshSignal() error {
	ssid, connected, err := v.Gateway.ConnectedSSID()
	switch {
	case err != nil && v.Fallback == FallbackHard:
		return err
	case err != nil:
		logging.Warn("Could not read connected SSID", zap.Error(err))
		v.ssid, v.connected = UnavailableText, false
		return nil
	}

	if ssid != v.ssid {
		v.signal = ""
	}
	v.ssid, v.connected = ssid, connected
	if !connected {
		return nil
	}

	entries, err := v.Gateway.ScanNetworks()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.SSID == ssid {
			v.signal = e.Signal
			return nil
		}
	}
	logging.Debug("Connected network missing from scan", zap.String("ssid", ssid))
	return nil
}

func (v *StatusView) ssidText() string {
	switch {
	case v.connected:
		return displaySSID(v.ssid)
	case v.ssid == UnavailableText:
		return UnavailableText
	default:
		return NotConnectedText
	}
}

func (v *StatusView) signalText() string {
	if !v.connected || v.signal == "" {
		return NoSignalText
	}
	return ui.Printable(v.signal)
}

// StatusFrame formats the status lines with right-aligned labels.
func StatusFrame(ssid, signal string, info *router.RouterInfo) Frame {
	speed := NoSignalText
	if info != nil {
		speed = info.String()
	}
	return Frame{
		statusLine("SSID", ssid),
		statusLine("Signal", signal),
		statusLine("Speed", speed),
	}
}

func statusLine(label, value string) string {
	return ui.LabelStyle.Render(fmt.Sprintf("%*s:", statusLabelWidth, label)) + " " + ui.ValueStyle.Render(value)
}
