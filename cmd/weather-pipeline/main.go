package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/tiagomars/weather-data-pipeline/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
