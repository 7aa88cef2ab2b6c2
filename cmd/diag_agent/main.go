// Package main implements the diag_agent CLI for diagnostic extraction and
// remediation allocation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "diag_agent",
	Short: "Diagnostic extraction and remediation allocation",
	Long: "diag_agent turns free-text grading artifacts into structured diagnostic signals " +
		"(standard codes, canonical topics, ranked misconceptions, mastery levels) and allocates " +
		"a bounded set of practice units to each performance band of a class.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	verbose    bool
	logMode    string
	traceOut   string
	dbURL      string
)

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd.
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRunE = teardown
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print boxed summaries")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "Log mode: dev or prod (default dev)")
	rootCmd.PersistentFlags().StringVar(&traceOut, "trace", "", "Write spans to this file (\"-\" for stderr)")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
