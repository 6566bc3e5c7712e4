// Command qsparse compiles a query string into filter conditions and prints
// them as JSON.
package main

import (
	"fmt"
	"os"

	"github.com/vinicius-lino-figueiredo/qsfilter/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "qsparse:", err)
		os.Exit(1)
	}
}
