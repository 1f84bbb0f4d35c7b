package main

import (
	"os"

	"github.com/FixedOPS-AI/fixedops-ai-demo/cmd/commands"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if level, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	// Execute root command
	if err := commands.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
