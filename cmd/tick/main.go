// ABOUTME: Entry point for the tick metronome
// ABOUTME: Delegates to the cobra root command
package main

import (
	"fmt"
	"os"

	"github.com/harperreed/tick/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
