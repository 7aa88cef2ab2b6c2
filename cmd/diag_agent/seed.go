package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load a catalog and roster into the database",
	Long:  "Applies migrations, stores the configured curriculum catalog and, when given, upserts a ClassRoster with its score records.",
	RunE:  runSeed,
}

var seedRoster string

func init() {
	seedCmd.Flags().StringVarP(&seedRoster, "roster", "r", "", "Path to a ClassRoster JSON file")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var roster *types.ClassRoster
	if seedRoster != "" {
		roster = &types.ClassRoster{}
		if err := readJSON(seedRoster, "roster", roster); err != nil {
			return err
		}
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	// 1. Schema
	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// 2. Catalog
	if err := database.SaveCatalog(ctx, c.BySubject()); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	// 3. Roster
	if roster != nil {
		if err := database.SaveClassRoster(ctx, roster); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d subjects", len(c.Subjects()))
	if roster != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), " and class %s (%d students)", roster.ClassID, len(roster.Students))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
