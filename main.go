package main

import (
	"os"

	"github.com/mindmorph/mindmorph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
