package router

import (
	"fmt"
	"math"
)

// Speed unit suffixes
const (
	UnitBytes     = "B/s"
	UnitKilobytes = "KB/s"
	UnitMegabytes = "MB/s"
)

// SpeedUnit picks the display unit for a throughput in bytes per second:
// below 1024 is B/s, anything that still rounds above 1024 after dividing
// by 1024 is MB/s, and the rest is KB/s.
func SpeedUnit(speed float64) string {
	switch {
	case speed < 1024:
		return UnitBytes
	case math.Round(speed/1024) > 1024:
		return UnitMegabytes
	default:
		return UnitKilobytes
	}
}

// FormatSpeed scales speed to its display unit and returns the number and unit separately,
// so callers can style them independently.
// Example: 150000 → ("146.5", "KB/s")
func FormatSpeed(speed float64) (value, unit string) {
	unit = SpeedUnit(speed)
	switch unit {
	case UnitMegabytes:
		return fmt.Sprintf("%.1f", speed/1024/1024), unit
	case UnitKilobytes:
		return fmt.Sprintf("%.1f", speed/1024), unit
	default:
		return fmt.Sprintf("%.0f", speed), unit
	}
}

// String returns a plain one-line summary of the throughput
func (ri *RouterInfo) String() string {
	upValue, upUnit := FormatSpeed(ri.UpSpeed)
	downValue, downUnit := FormatSpeed(ri.DownSpeed)
	return fmt.Sprintf("↑ %s %s  ↓ %s %s", upValue, upUnit, downValue, downUnit)
}

// String returns a one-line summary of a scanned network
func (e ScanEntry) String() string {
	return fmt.Sprintf("%s (%s, ch %s, %s, signal %s)", e.SSID, e.BSSID, e.Channel, e.Security, e.Signal)
}
