package main

import (
	"os"

	"github.com/cnc-league/cnc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
