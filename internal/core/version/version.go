// Package version reports which grocer build is running, for --version and GET /version
package version

import "runtime/debug"

// Release builds stamp these with
//
//	-ldflags "-X grocer/internal/core/version.version=v0.3.0 -X grocer/internal/core/version.commit=$(git rev-parse --short HEAD) -X grocer/internal/core/version.date=$(date -u +%F)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the /version payload
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the stamped build. An unstamped `go install` build reports its
// module version and VCS revision instead of the placeholders
func Info() BuildInfo {
	b := BuildInfo{Service: "grocer", Version: version, Commit: commit, Date: date}
	if version != "dev" {
		return b
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		b.Version = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Commit = s.Value[:min(len(s.Value), 12)]
		case "vcs.time":
			b.Date = s.Value
		}
	}
	return b
}

// String renders the build on one line: "v0.3.0 (abc123, 2026-10-01)"
func (b BuildInfo) String() string {
	return b.Version + " (" + b.Commit + ", " + b.Date + ")"
}
