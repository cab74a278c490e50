// Package version reports build metadata, set via ldflags or read from the
// embedded VCS information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	BuildDate string // Set via ldflags.

	Revision  = revision(readBuildSettings())
	GoVersion = runtime.Version()
)

// GetVersion returns [Version], or the VCS revision for untagged builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// Summary returns a one-line description of the build.
func Summary() string {
	s := fmt.Sprintf("%s (%s, %s/%s)", GetVersion(), GoVersion, runtime.GOOS, runtime.GOARCH)
	if BuildDate != "" {
		s += " built " + BuildDate
	}

	return s
}

func readBuildSettings() map[string]string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}

	return settings
}

func revision(settings map[string]string) string {
	rev, ok := settings["vcs.revision"]
	if !ok || rev == "" {
		return "unknown"
	}

	rev = rev[:min(7, len(rev))]
	if settings["vcs.modified"] == "true" {
		rev += "-dirty"
	}

	return rev
}
