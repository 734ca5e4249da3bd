// Command lspsh is a minimal demonstration shell around package lspclient:
// it launches a language server named by a .lspsh.yaml config entry (or
// directly on the command line), drives the initialize handshake, and
// prints every event the server sends back.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
