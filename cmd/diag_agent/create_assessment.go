package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/db"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

var createAssessmentCmd = &cobra.Command{
	Use:   "create-assessment",
	Short: "Create an assessment for one band from stored questions",
	Long:  "Persists an assessment for a band of a DiagnosticReport, linking up to each unit's count of stored questions per recommended topic, and reports topics that ran short.",
	RunE:  runCreateAssessment,
}

var (
	createAssessmentInput   string
	createAssessmentBand    string
	createAssessmentClassID string
	createAssessmentTitle   string
	createAssessmentOutput  string
)

func init() {
	createAssessmentCmd.Flags().StringVarP(&createAssessmentInput, "in", "i", "", "Path to input DiagnosticReport JSON file (required)")
	createAssessmentCmd.Flags().StringVarP(&createAssessmentBand, "band", "b", "", "Band to create the assessment for (required)")
	createAssessmentCmd.Flags().StringVar(&createAssessmentClassID, "class-id", "", "Class ID (defaults to the report's class)")
	createAssessmentCmd.Flags().StringVar(&createAssessmentTitle, "title", "", "Assessment title")
	createAssessmentCmd.Flags().StringVarP(&createAssessmentOutput, "out", "o", "", "Path to output Assessment JSON file (stdout when empty)")

	if err := createAssessmentCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := createAssessmentCmd.MarkFlagRequired("band"); err != nil {
		panic(fmt.Sprintf("failed to mark band flag as required: %v", err))
	}

	rootCmd.AddCommand(createAssessmentCmd)
}

func runCreateAssessment(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// 1. Load the report and find the band's units
	var r types.DiagnosticReport
	if err := readJSON(createAssessmentInput, "report", &r); err != nil {
		return err
	}

	var units []types.RecommendationUnit
	found := false
	for _, rec := range r.Recommendations {
		if string(rec.Band) == createAssessmentBand {
			units, found = rec.Units, true
			break
		}
	}
	if !found {
		return fmt.Errorf("band %q has no recommendations in %s", createAssessmentBand, createAssessmentInput)
	}

	classID := createAssessmentClassID
	if classID == "" {
		classID = r.ClassID
	}
	input := db.AssessmentInput{
		ClassID: classID,
		Band:    types.BandID(createAssessmentBand),
		Title:   createAssessmentTitle,
		Units:   units,
	}

	// 2. Persist
	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	a, err := database.CreateAssessment(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}
	for topic, missing := range a.Shortfall {
		state.log.Warn("not enough stored questions", "topic", topic, "missing", missing)
	}

	return writeJSON(cmd, createAssessmentOutput, a)
}
