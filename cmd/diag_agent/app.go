package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/catalog"
	"github.com/jonathan/diagnostic-engine/internal/config"
	"github.com/jonathan/diagnostic-engine/internal/db"
	"github.com/jonathan/diagnostic-engine/internal/logging"
	"github.com/jonathan/diagnostic-engine/internal/observability"
	"github.com/jonathan/diagnostic-engine/internal/schemas"
)

// app holds what the root command sets up for every subcommand.
type app struct {
	cfg       config.Config
	log       *logging.Logger
	shutdown  func(context.Context) error
	traceFile *os.File
}

var state = &app{cfg: config.Defaults(), log: logging.Nop()}

// setup resolves the configuration (file, then flags, then defaults, then
// environment) and starts logging and tracing.
func setup(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Flags override the config file
	if cmd.Flags().Changed("log-mode") {
		cfg.LogMode = logMode
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = dbURL
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	var traceWriter io.Writer
	var traceFile *os.File
	switch traceOut {
	case "":
	case "-":
		traceWriter = cmd.ErrOrStderr()
	default:
		traceFile, err = os.Create(traceOut)
		if err != nil {
			return fmt.Errorf("failed to create trace file %s: %w", traceOut, err)
		}
		traceWriter = traceFile
	}

	shutdown, err := observability.InitTracing(cmd.Context(), log, observability.TraceConfig{
		ServiceName: rootCmd.Name(),
		Out:         traceWriter,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	state = &app{cfg: cfg, log: log.With("command", cmd.Name()), shutdown: shutdown, traceFile: traceFile}
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	defer state.log.Sync()

	if state.shutdown != nil {
		if err := state.shutdown(cmd.Context()); err != nil {
			state.log.Warn("trace shutdown failed", "error", err)
		}
	}
	if state.traceFile != nil {
		return state.traceFile.Close()
	}
	return nil
}

// readJSON decodes the JSON file at path into v.
func readJSON(path, what string, v any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s file %s: %w", what, path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s JSON: %w", what, err)
	}
	return nil
}

// writeJSON writes v as indented JSON to path, creating its directory, or
// to the command's stdout when path is empty or "-".
func writeJSON(cmd *cobra.Command, path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output to JSON: %w", err)
	}

	if path == "" || path == "-" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonOutput))
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// checkOutput validates v against a schema. A mismatch is reported on
// stderr and never fails the command.
func checkOutput(cmd *cobra.Command, name schemas.Name, v any) {
	if err := schemas.ValidateValue(name, v); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Output validation failed: %v\n", err)
	}
}

// loadCatalog returns the configured catalog, or the embedded default.
func loadCatalog() (*catalog.Catalog, error) {
	if state.cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(state.cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	state.log.Debug("catalog loaded", "path", state.cfg.CatalogPath, "subjects", c.Subjects())
	return c, nil
}

// openDB connects to the configured database.
func openDB(ctx context.Context) (*db.DB, error) {
	if state.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (use --db-url, database_url in config, or %s)", config.EnvDatabaseURL)
	}
	database, err := db.Connect(ctx, state.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return database, nil
}

// printer returns a boxed-summary printer when verbose output is on.
func printer(cmd *cobra.Command) *observability.Printer {
	if !state.cfg.Verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}
