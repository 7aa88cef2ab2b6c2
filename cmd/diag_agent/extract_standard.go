package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/standards"
)

var extractStandardCmd = &cobra.Command{
	Use:   "extract-standard",
	Short: "Extract a curriculum standard code from a label or free text",
	Long:  "Scans a standard label (falling back to free text) for a curriculum standard code such as G.GMD.B.4, A-REI.B.4 or 7.G.B.6 and prints the upper-cased code.",
	RunE:  runExtractStandard,
}

var (
	extractStandardText  string
	extractStandardLabel string
)

// standardResult is the extract-standard output.
type standardResult struct {
	Code  string `json:"code,omitempty"`
	Found bool   `json:"found"`
}

func init() {
	extractStandardCmd.Flags().StringVarP(&extractStandardText, "text", "t", "", "Free text to scan (required)")
	extractStandardCmd.Flags().StringVarP(&extractStandardLabel, "label", "l", "", "Standard label, tried before --text")

	if err := extractStandardCmd.MarkFlagRequired("text"); err != nil {
		panic(fmt.Sprintf("failed to mark text flag as required: %v", err))
	}

	rootCmd.AddCommand(extractStandardCmd)
}

func runExtractStandard(cmd *cobra.Command, _ []string) error {
	code, ok := standards.ExtractFromLabels(extractStandardLabel, extractStandardText)
	return writeJSON(cmd, "", standardResult{Code: code, Found: ok})
}
