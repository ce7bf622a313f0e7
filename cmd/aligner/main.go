// Package main provides the entry point for the Resume Aligner HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aligner",
	Short: "Resume Aligner HTTP API Server",
	Long:  "Resume Aligner guides a candidate from a voice interview about their experience, through a job-fit evaluation, to a polished bilingual resume draft, via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
