package main

import (
	"os"

	"github.com/cosmiccodedger/portfolio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
