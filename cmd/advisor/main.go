// Package main provides the advisor CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hdbank-ai/card-advisor/cmd/advisor/commands"
)

func main() {
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
