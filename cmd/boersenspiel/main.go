package main

import (
	"os"

	"github.com/boersenspiel/leaderboard/cmd/boersenspiel/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
