package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/report"
	"github.com/jonathan/diagnostic-engine/internal/schemas"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a full diagnostic report for a class",
	Long: "Runs the whole diagnostic flow for a class: topic resolution, band grouping, remediation allocation, " +
		"misconception mining and mastery decisions. Reads the roster from a JSON file or from the database.",
	RunE: runReport,
}

var (
	reportInput   string
	reportClassID string
	reportOutput  string
	reportSubject string
	reportBudget  int
)

func init() {
	reportCmd.Flags().StringVarP(&reportInput, "in", "i", "", "Path to input ClassRoster JSON file")
	reportCmd.Flags().StringVar(&reportClassID, "class-id", "", "Load the roster for this class from the database")
	reportCmd.Flags().StringVarP(&reportOutput, "out", "o", "", "Path to output DiagnosticReport JSON file (stdout when empty)")
	reportCmd.Flags().StringVarP(&reportSubject, "subject", "s", "", "Override the roster's subject scope")
	reportCmd.Flags().IntVar(&reportBudget, "budget", 0, "Units per band (defaults to config budget)")
	reportCmd.MarkFlagsMutuallyExclusive("in", "class-id")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// 1. Load the roster
	roster, err := loadRoster(cmd)
	if err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	budget := state.cfg.Budget
	if cmd.Flags().Changed("budget") {
		budget = reportBudget
	}
	// 2. Build
	r, err := report.NewBuilder(c, state.log).Build(ctx, roster, report.Options{
		Subject: reportSubject,
		Budget:  budget,
		Workers: state.cfg.Workers,
	})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	// 3. Write and validate
	if err := writeJSON(cmd, reportOutput, r); err != nil {
		return err
	}
	checkOutput(cmd, schemas.DiagnosticReport, r)

	if p := printer(cmd); p != nil {
		p.PrintReport(r)
	}
	if reportOutput != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote report %s for %d students to %s\n", r.ID, len(r.Students), reportOutput)
	}
	return nil
}

func loadRoster(cmd *cobra.Command) (*types.ClassRoster, error) {
	switch {
	case reportInput != "":
		var roster types.ClassRoster
		if err := readJSON(reportInput, "roster", &roster); err != nil {
			return nil, err
		}
		return &roster, nil

	case reportClassID != "":
		database, err := openDB(cmd.Context())
		if err != nil {
			return nil, err
		}
		defer database.Close()

		roster, err := database.GetClassRoster(cmd.Context(), reportClassID)
		if err != nil {
			return nil, fmt.Errorf("failed to load class %s: %w", reportClassID, err)
		}
		if roster == nil {
			return nil, fmt.Errorf("class not found: %s", reportClassID)
		}
		return roster, nil

	default:
		return nil, errors.New("one of --in or --class-id is required")
	}
}
