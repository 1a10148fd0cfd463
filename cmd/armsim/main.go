// Package main is the armsim command.
package main

import (
	"os"

	"go.viam.com/armsim/cli"
	"go.viam.com/armsim/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("armsim").Error(err)
		os.Exit(1)
	}
}
