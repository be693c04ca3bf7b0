// Command gradebook manages a file of student grade records.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/gradebook/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
