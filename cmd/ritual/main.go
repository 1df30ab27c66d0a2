// Command ritual tracks recurring habits and reports their progress.
package main

import (
	"fmt"
	"os"

	_ "time/tzdata" // IANA zones on hosts without a zoneinfo database

	"github.com/roach88/ritual/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ritual: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
