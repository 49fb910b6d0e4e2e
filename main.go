package main

import (
	"log"
	"os"

	"github.com/avstrong/dims/internal/app"
	"github.com/avstrong/dims/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	var l *logger.Logger

	if os.Getenv("DIMS_DEBUG") != "" {
		l = logger.NewWithDebug(log.Default())
	} else {
		l = logger.New(log.Default())
	}

	if envErr != nil {
		l.LogDebugf("No .env file loaded: %v", envErr.Error())
	}

	var exitCode int

	if err := app.Run(l, os.Args[1:]); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	os.Exit(exitCode)
}
