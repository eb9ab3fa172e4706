// Package version holds the build version for andromeda.
package version

// Set at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = ""
)

// FullVersion returns "<version> (<commit>) <build time>", leaving out
// what is unset.
func FullVersion() string {
	s := Version
	if Commit != "" && Commit != "none" {
		s += " (" + Commit + ")"
	}

	if BuildTime != "" {
		s += " " + BuildTime
	}

	return s
}
