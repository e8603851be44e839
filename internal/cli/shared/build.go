package shared

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/beamscheck"

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}
