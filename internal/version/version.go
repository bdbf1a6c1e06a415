// Package version reports the build's version and commit.
//
// Release builds set both through ldflags:
//
//	go build -ldflags="-X github.com/prajwalch/ro/internal/version.Version=v1.2.3 \
//	                   -X github.com/prajwalch/ro/internal/version.Commit=abc123" ./cmd/ro
//
// Otherwise they come from the module and VCS information embedded by the Go
// toolchain, and finally from "dev"/"unknown".
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// Version is the semantic version of ro
	Version = ""
	// Commit is the short git commit hash
	Commit = ""
)

const shortHashLen = 7

func init() {
	if Version == "" || Commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			fromBuildInfo(info)
		}
	}

	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo fills whatever ldflags left empty. A module version is only
// present for "go install ...@version" builds; local builds fall back to the
// commit date.
func fromBuildInfo(info *debug.BuildInfo) {
	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	if Commit == "" {
		if rev := settings["vcs.revision"]; rev != "" {
			Commit = rev[:min(len(rev), shortHashLen)]
			if settings["vcs.modified"] == "true" {
				Commit += "-dirty"
			}
		}
	}

	if Version != "" {
		return
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		Version = v
		return
	}
	if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
		Version = "dev-" + t.Format("20060102")
	}
}

// UserAgent is the HTTP User-Agent sent to the router
func UserAgent() string {
	return "ro/" + Version
}

// Full returns the version string printed by "ro version"
func Full() string {
	return fmt.Sprintf("ro %s (commit: %s)", Version, Commit)
}
