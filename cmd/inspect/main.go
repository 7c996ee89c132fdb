package main

import (
	"os"

	"showroom/cmd/inspect/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
