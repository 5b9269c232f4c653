package main

import (
	"fmt"
	"os"

	"github.com/ericlevine/barcodefont/cmd/code128font/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
