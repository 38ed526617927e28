package main

import (
	"os"

	"github.com/HolmesInc/data-storage/internal/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
