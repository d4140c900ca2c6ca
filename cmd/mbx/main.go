package main

import "os"

// Version info - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.1.0"
	BuildDate      string = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
