package main

import (
	"os"

	"github.com/bggg/transcriptor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
