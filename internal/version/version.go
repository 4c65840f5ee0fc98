// Package version reports the build of the fleet binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags. When they are not,
// String falls back to the VCS stamp the Go toolchain embeds.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version line printed by `fleet version` and `fleet --version`.
func String() string {
	commit, built, dirty := Commit, BuildTime, false
	if commit == "unknown" {
		commit, built, dirty = fromBuildInfo(built)
	}

	s := fmt.Sprintf("fleet %s (commit: %s, built: %s)", Version, short(commit), built)
	if dirty {
		s += " [modified]"
	}
	return s
}

func fromBuildInfo(built string) (commit, buildTime string, dirty bool) {
	commit, buildTime = "unknown", built
	info, ok := readBuildInfo()
	if !ok {
		return commit, buildTime, false
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
		case "vcs.time":
			if buildTime == "unknown" {
				buildTime = setting.Value
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return commit, buildTime, dirty
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
