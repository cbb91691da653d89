// Package version exposes the build's version metadata.
package version

import (
	"runtime/debug"
)

var (
	// Version is the semantic version of the build. Overridden at release
	// time via -ldflags.
	Version = "0.1.0"

	// Revision is the VCS revision the build was produced from.
	Revision = getRevision()
)

func getRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	revision := "unknown"
	dirty := false

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if dirty {
		revision += "-dirty"
	}

	return revision
}
