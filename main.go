package main

import (
	"os"

	"clippy/cmd"
	"clippy/internal/ui"
)

// Set by the build via -ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)

	if err := cmd.Execute(); err != nil {
		ui.NewConsole().Errorf("%v", err)
		os.Exit(1)
	}
}
