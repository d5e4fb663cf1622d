package main

import (
	"os"

	"github.com/vchandu111/IntervueAI/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
