package main

import (
	"os"

	"github.com/evaldesk/evaldesk/cmd/evalctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
