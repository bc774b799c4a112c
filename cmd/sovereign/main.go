// Command sovereign runs queries against a Sovereign orchestrator from the
// command line or serves it as an MCP server over stdio.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
