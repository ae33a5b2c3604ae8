// Command docent is the entry point for the Docent document agent.
package main

import (
	"fmt"
	"os"

	"github.com/docent-ai/docent/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
