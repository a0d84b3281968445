package main

import (
	"os"

	"github.com/alpacahq/bizcal/cmd"
	"github.com/alpacahq/bizcal/utils/log"
)

func main() {
	defer log.Sync()
	if err := cmd.Execute(); err != nil {
		log.Sync()
		os.Exit(1)
	}
}
