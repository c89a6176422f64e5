// Command qloop validates classical functions against the physical
// constraints of quantum computation and assembles bounded repetitions
// of validated functions.
package main

import (
	"fmt"
	"os"

	"github.com/qsafe/qloop/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
