package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	savedVersion, savedCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = savedVersion, savedCommit })

	tests := []struct {
		name        string
		info        *debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name: "go install at a tag",
			info: &debug.BuildInfo{
				Main:     debug.Module{Version: "v1.4.0"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			},
			wantVersion: "v1.4.0",
			wantCommit:  "0123456",
		},
		{
			name: "dirty local build",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc"},
					{Key: "vcs.modified", Value: "true"},
					{Key: "vcs.time", Value: "2025-03-01T10:00:00Z"},
				},
			},
			wantVersion: "dev-20250301",
			wantCommit:  "abc-dirty",
		},
		{
			name: "no vcs info",
			info: &debug.BuildInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = "", ""
			fromBuildInfo(tt.info)

			if Version != tt.wantVersion || Commit != tt.wantCommit {
				t.Errorf("got %q/%q, want %q/%q", Version, Commit, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestFromBuildInfo_KeepsLdflags(t *testing.T) {
	savedVersion, savedCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = savedVersion, savedCommit })

	Version, Commit = "v2.0.0", ""
	fromBuildInfo(&debug.BuildInfo{
		Main:     debug.Module{Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "feedface"}},
	})

	if Version != "v2.0.0" || Commit != "feedfac" {
		t.Errorf("got %q/%q", Version, Commit)
	}
}

func TestFull(t *testing.T) {
	if !strings.HasPrefix(Full(), "ro "+Version) {
		t.Errorf("Full() = %q", Full())
	}
	if UserAgent() != "ro/"+Version {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
