// Command repr renders a JSON, YAML or TOML document, or the result of a CEL
// expression over it, with the repr text renderer.
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
