package main

import (
	"os"

	"cashflow-tracker/internal/cli"

	"github.com/pterm/pterm"
)

var version = "dev"

func main() {
	if err := cli.NewCLIApp(version).Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
