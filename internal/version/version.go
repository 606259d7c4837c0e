package version

import "fmt"

// Tagline is used in help text
const Tagline = "Operator console for the Lumina LLM gateway"

// Build information injected at build time via ldflags
var (
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = "unknown"
	Version   = "dev"
)

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("lumina %s (commit: %s, built: %s, go: %s)", Version, Commit, Date, GoVersion)
}

// UserAgent is sent with every gateway request
func UserAgent() string {
	return "lumina-console/" + Version
}
