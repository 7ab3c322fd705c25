// sourcerank ranks reference sources by knowledge value for a query.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
