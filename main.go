package main

import (
	"os"

	"github.com/flexworks/co2flex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
