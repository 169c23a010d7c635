// Package version carries the build identity shown by the version
// command; BuildDate and GitCommit are injected at link time.
package version

// Version is the current release.
const Version = "0.3.0"

// BuildDate is set via -ldflags at build time.
var BuildDate = "unknown"

// GitCommit is set via -ldflags at build time.
var GitCommit = "unknown"

// GetVersion returns the release version.
func GetVersion() string { return Version }

// GetBuildDate returns the injected build date.
func GetBuildDate() string { return BuildDate }

// GetGitCommit returns the injected commit hash.
func GetGitCommit() string { return GitCommit }
