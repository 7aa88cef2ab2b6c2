package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/misconceptions"
	"github.com/jonathan/diagnostic-engine/internal/schemas"
)

var extractMisconceptionsCmd = &cobra.Command{
	Use:   "extract-misconceptions",
	Short: "Extract ranked misconceptions from a grade justification",
	Long:  "Mines a free-text grade justification for issue statements and bullet points, classifies each as high, medium or low severity, removes overlapping entries and prints at most eight, most severe first.",
	RunE:  runExtractMisconceptions,
}

var (
	extractMisconceptionsText   string
	extractMisconceptionsInput  string
	extractMisconceptionsOutput string
)

func init() {
	extractMisconceptionsCmd.Flags().StringVarP(&extractMisconceptionsText, "text", "t", "", "Justification text")
	extractMisconceptionsCmd.Flags().StringVarP(&extractMisconceptionsInput, "in", "i", "", "Path to a text file holding the justification")
	extractMisconceptionsCmd.Flags().StringVarP(&extractMisconceptionsOutput, "out", "o", "", "Path to output Misconceptions JSON file (stdout when empty)")
	extractMisconceptionsCmd.MarkFlagsMutuallyExclusive("text", "in")

	rootCmd.AddCommand(extractMisconceptionsCmd)
}

func runExtractMisconceptions(cmd *cobra.Command, _ []string) error {
	// 1. Load the justification
	text := extractMisconceptionsText
	if extractMisconceptionsInput != "" {
		content, err := os.ReadFile(extractMisconceptionsInput)
		if err != nil {
			return fmt.Errorf("failed to read justification file %s: %w", extractMisconceptionsInput, err)
		}
		text = string(content)
	}
	if text == "" {
		return errors.New("one of --text or --in is required")
	}

	// 2. Extract
	found := misconceptions.Extract(text)

	// 3. Write and validate
	if err := writeJSON(cmd, extractMisconceptionsOutput, found); err != nil {
		return err
	}
	checkOutput(cmd, schemas.Misconceptions, found)

	if p := printer(cmd); p != nil {
		p.PrintMisconceptions("Justification", found)
	}
	return nil
}
