package main

import (
	"os"

	"github.com/NovantaCreativeTeam/pracsi-script/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
