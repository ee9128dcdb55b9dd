package main

import (
	"os"

	"esp-monitor/cmd/esp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
