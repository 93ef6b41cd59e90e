package main

import (
	"os"

	"github.com/penwyp/go-geo-replay/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
