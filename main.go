package main

import (
	"os"

	"github.com/KenichiNogami/ricePriceSurvey/cmd"
	"github.com/KenichiNogami/ricePriceSurvey/logger"
)

func main() {
	err := cmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
