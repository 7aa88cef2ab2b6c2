package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/mastery"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Decide a student's mastery level and advancement",
	Long:  "Maps scores to mastery levels A through F and decides whether the student may advance. Takes either a latest score with an optional current level, or a JSON score history.",
	RunE:  runLevel,
}

var (
	levelScore   float64
	levelCurrent string
	levelHistory string
)

func init() {
	levelCmd.Flags().Float64Var(&levelScore, "score", 0, "Latest score (0-100)")
	levelCmd.Flags().StringVar(&levelCurrent, "current", "", "Current level A-F (derived from --score when empty)")
	levelCmd.Flags().StringVar(&levelHistory, "history", "", "Path to a JSON array of ScoreRecords")
	levelCmd.MarkFlagsMutuallyExclusive("score", "history")
	levelCmd.MarkFlagsMutuallyExclusive("current", "history")

	rootCmd.AddCommand(levelCmd)
}

func runLevel(cmd *cobra.Command, _ []string) error {
	var status types.MasteryStatus

	switch {
	case levelHistory != "":
		var history []types.ScoreRecord
		if err := readJSON(levelHistory, "score history", &history); err != nil {
			return err
		}
		status = mastery.FromHistory(history)

	case cmd.Flags().Changed("score"):
		if err := types.CheckScore("score", levelScore); err != nil {
			return err
		}
		current := mastery.ScoreToLevel(levelScore)
		if levelCurrent != "" {
			current = types.MasteryLevel(strings.ToUpper(strings.TrimSpace(levelCurrent)))
			if !mastery.IsValid(current) {
				return fmt.Errorf("unknown mastery level %q", levelCurrent)
			}
		}
		status = mastery.Decide(current, levelScore)

	default:
		return errors.New("one of --score or --history is required")
	}

	if err := writeJSON(cmd, "", status); err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintMastery("Student", &status)
	}
	return nil
}
