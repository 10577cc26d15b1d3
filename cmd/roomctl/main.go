package main

import (
	"os"

	"github.com/revtradingpros/backend/cmd/roomctl/commands"
)

// main is the entry point for the room analytics CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
