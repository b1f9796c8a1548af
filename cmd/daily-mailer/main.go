package main

import (
	"os"
	_ "time/tzdata"

	"github.com/telekom/daily-mailer/pkg/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and maps the outcome to a process exit code.
func run(args []string) int {
	root := cli.NewRootCommand(cli.DefaultOptions())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
