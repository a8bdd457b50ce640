// Package main provides the entry point for the recruiting pipeline HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recruiter",
	Short: "Recruiting pipeline HTTP API server",
	Long:  "Recruiter runs the candidate pipeline board, interview notes, and the AI evaluation assistant behind a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
