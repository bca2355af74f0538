package client

// Version information (set by main via ldflags)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// UserAgent returns the User-Agent string for API requests.
// Always uses the project name, even if the binary is renamed.
func UserAgent() string {
	return projectName + "/" + Version
}
