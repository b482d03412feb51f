// Package settings provides build metadata, runtime configuration, and
// context helpers used across the jqi CLI and its internal packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "jqi"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// InputSettings describes where the session document comes from.
type InputSettings struct {
	FromStdin bool
	Path      string
}

// Run holds configuration settings for a single interactive session.
// It includes options for logging, input source, and output behavior.
type Run struct {
	MinLogLevel int8
	LogFile     string
	Input       InputSettings
	IsQuiet     bool
	NoColor     bool
}

// NewCliParams initializes and returns a pointer to a Run struct with default CLI parameters.
// Logging is at info level with no log file, so nothing is written while the TUI owns the terminal.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Input: InputSettings{
			FromStdin: true,
		},
		IsQuiet: false,
		NoColor: false,
	}
}
