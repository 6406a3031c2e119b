// Command tlox is the CLI entry point: REPL, file, and TCP server modes.
package main

import (
	"os"

	"github.com/loxrun/tlox/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
