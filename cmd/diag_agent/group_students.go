package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/report"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

var groupStudentsCmd = &cobra.Command{
	Use:   "group-students",
	Short: "Group a class roster into performance bands",
	Long:  "Resolves every record of a ClassRoster to a canonical topic, places each student with scored work into one of the four performance bands and lists each band's weakest topics.",
	RunE:  runGroupStudents,
}

var (
	groupStudentsInput   string
	groupStudentsOutput  string
	groupStudentsSubject string
)

func init() {
	groupStudentsCmd.Flags().StringVarP(&groupStudentsInput, "in", "i", "", "Path to input ClassRoster JSON file (required)")
	groupStudentsCmd.Flags().StringVarP(&groupStudentsOutput, "out", "o", "", "Path to output BandGroups JSON file (stdout when empty)")
	groupStudentsCmd.Flags().StringVarP(&groupStudentsSubject, "subject", "s", "", "Override the roster's subject scope")

	if err := groupStudentsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(groupStudentsCmd)
}

func runGroupStudents(cmd *cobra.Command, _ []string) error {
	// 1. Load the roster
	var roster types.ClassRoster
	if err := readJSON(groupStudentsInput, "roster", &roster); err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	// 2. Group through the report flow so topics are resolved the same way
	r, err := report.NewBuilder(c, state.log).Build(cmd.Context(), &roster, report.Options{
		Subject: groupStudentsSubject,
		Budget:  state.cfg.Budget,
		Workers: state.cfg.Workers,
	})
	if err != nil {
		return fmt.Errorf("failed to group students: %w", err)
	}

	// 3. Write output
	if err := writeJSON(cmd, groupStudentsOutput, r.Groups); err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintGroups(r.Groups)
	}
	return nil
}
