package main

import (
	"os"

	"github.com/stableswap/ssamm/cmd/ssammctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
