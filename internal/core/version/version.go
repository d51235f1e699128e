// Package version provides information about the build version of fixred.
package version

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'fixred/internal/core/version.version=v0.2.0'
	// -X 'fixred/internal/core/version.commit=abcd' -X 'fixred/internal/core/version.date=2026-10-19'"
	return BuildInfo{
		Service: "fixred",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// UserAgent is the default User-Agent sent when resolving redirects
func UserAgent() string { return "fixred/" + version }

// String renders the version line printed by --version
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
