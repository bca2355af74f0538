package main

import (
	"fmt"
	"os"

	"github.com/apimgr/cityweather/src/client"
)

var (
	// Version info (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	// Set version info for the client
	client.Version = Version
	client.GitCommit = GitCommit
	client.BuildDate = BuildDate

	// Execute CLI
	if err := client.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		// Exit with appropriate code based on error type
		os.Exit(client.ExitCode(err))
	}
}
