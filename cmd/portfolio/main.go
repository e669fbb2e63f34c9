package main

import (
	"os"

	"github.com/trogers1052/portfolio-analytics/cmd/portfolio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
