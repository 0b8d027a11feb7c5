package musicxml

import (
	"fmt"
	"runtime"
)

// Version is the semantic version of the musicxml library.
const Version = "0.1.0"

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.1.0")
	Version string `json:"version"`
	// GitCommit is the git commit hash (set via ldflags at build time)
	GitCommit string `json:"git_commit"`
	// BuildTime is the build timestamp (set via ldflags at build time)
	BuildTime string `json:"build_time"`
	// GoVersion is the Go version used to build
	GoVersion string `json:"go_version"`
}

// String formats the information on one line, as printed by "mxl --version".
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", v.Version, v.GitCommit, v.BuildTime, v.GoVersion)
}

// GetVersionInfo returns detailed version information.
//
// GitCommit, BuildTime, and GoVersion are populated at build time via -ldflags.
// If not set, the first two show as "unknown" and GoVersion falls back to
// the running toolchain.
//
// Example build command:
//
//	go build -ldflags="-X github.com/simonhull/musicxml.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/musicxml.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	  -X github.com/simonhull/musicxml.goVersion=$(go version | awk '{print $3}')" ./cmd/mxl
func GetVersionInfo() VersionInfo {
	goVer := goVersion
	if goVer == "unknown" {
		goVer = runtime.Version()
	}

	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: goVer,
	}
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)
