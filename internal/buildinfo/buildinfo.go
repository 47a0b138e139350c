// Package buildinfo exposes values stamped in at build time via -ldflags:
//
//	-X github.com/sweeney/pill-reminder/internal/buildinfo.Version=1.0.0
//	-X github.com/sweeney/pill-reminder/internal/buildinfo.Date=2026-10-19T08:00:00
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is the local build time, set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// String returns the version line shown by --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

// BuildTime returns the wall-clock time the binary was built, used to seed
// a real-time clock that lost power. Date is read as local wall time with
// no zone; without it the VCS commit time recorded by the Go toolchain is
// used. ok is false when neither is available.
func BuildTime() (t time.Time, ok bool) {
	if t, err := time.Parse("2006-01-02T15:04:05", Date); err == nil {
		return t, true
	}
	info, found := debug.ReadBuildInfo()
	if !found {
		return time.Time{}, false
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.time" {
			if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
