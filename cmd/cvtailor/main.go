// Package main provides the cvtailor command line interface and server
// entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvtailor",
	Short: "CV tailoring and rendering pipeline",
	Long:  "cvtailor extracts keywords from job postings, tailors a candidate profile to them, and renders the result into a typeset PDF.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
