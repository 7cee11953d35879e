// Package version reports how the celltint binary was built.
//
// Release builds set Version, Commit and Date through ldflags. Builds without
// them (go install, go run) fall back to the module and VCS data the Go
// toolchain embeds in the binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const unknown = "unknown"

var (
	// Version is the release version, set with
	// -ldflags "-X github.com/jmylchreest/celltint/internal/version.Version=x.y.z".
	Version = "dev"

	// Commit is the full git commit hash, set with
	// -ldflags "-X github.com/jmylchreest/celltint/internal/version.Commit=$(git rev-parse HEAD)".
	Commit = unknown

	// Date is the RFC3339 build time, set with
	// -ldflags "-X github.com/jmylchreest/celltint/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)".
	Date = unknown
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes a build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo merges the ldflags values with the embedded build info.
// Values set through ldflags always win.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	if bi.GoVersion != "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == unknown {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == unknown {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String formats the build for `celltint version`.
func String() string {
	info := GetInfo()
	var b strings.Builder
	fmt.Fprintf(&b, "celltint version %s", info.Version)
	if info.Commit != unknown {
		fmt.Fprintf(&b, " (commit: %s", shortCommit(info.Commit))
		if info.Modified {
			b.WriteString("+dirty")
		}
		if info.Date != unknown {
			fmt.Fprintf(&b, ", built: %s", info.Date)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, " %s %s", info.GoVersion, info.Platform)
	return b.String()
}

// Short returns the version alone, as used by --version.
func Short() string {
	return GetInfo().Version
}

func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
