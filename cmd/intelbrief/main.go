package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/briefops/intelbrief/internal/cli"
)

func main() {
	// Local development keeps secrets in .env; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
