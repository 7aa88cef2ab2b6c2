package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/remediation"
	"github.com/jonathan/diagnostic-engine/internal/schemas"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate practice units to each band's weak topics",
	Long:  "Reads BandGroups JSON and spends a fixed unit budget per band across its weak topics, weakest first, labelling each unit with the band's practice difficulty.",
	RunE:  runAllocate,
}

var (
	allocateInput  string
	allocateOutput string
	allocateBand   string
	allocateBudget int
)

func init() {
	allocateCmd.Flags().StringVarP(&allocateInput, "in", "i", "", "Path to input BandGroups JSON file (required)")
	allocateCmd.Flags().StringVarP(&allocateOutput, "out", "o", "", "Path to output recommendations JSON file (stdout when empty)")
	allocateCmd.Flags().StringVarP(&allocateBand, "band", "b", "", "Only allocate for this band")
	allocateCmd.Flags().IntVar(&allocateBudget, "budget", 0, "Units per band (defaults to config budget)")

	if err := allocateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(allocateCmd)
}

func runAllocate(cmd *cobra.Command, _ []string) error {
	// 1. Load groups
	var groups []types.BandGroup
	if err := readJSON(allocateInput, "band groups", &groups); err != nil {
		return err
	}

	budget := state.cfg.Budget
	if cmd.Flags().Changed("budget") {
		budget = allocateBudget
	}

	if allocateBand != "" {
		kept := groups[:0]
		for _, g := range groups {
			if string(g.Band.ID) == allocateBand {
				kept = append(kept, g)
			}
		}
		if len(kept) == 0 {
			return fmt.Errorf("band %q not found in %s", allocateBand, allocateInput)
		}
		groups = kept
	}

	// 2. Allocate
	recs, err := remediation.AllocateGroups(groups, budget)
	if err != nil {
		return fmt.Errorf("failed to allocate: %w", err)
	}

	// 3. Write and validate
	if err := writeJSON(cmd, allocateOutput, recs); err != nil {
		return err
	}
	for _, rec := range recs {
		checkOutput(cmd, schemas.Recommendations, rec)
	}

	if p := printer(cmd); p != nil {
		p.PrintRecommendations(recs)
	}
	state.log.Debug("allocated", "bands", len(recs), "budget", budget)
	return nil
}
