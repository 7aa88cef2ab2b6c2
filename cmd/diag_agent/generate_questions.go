package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/diagnostic-engine/internal/config"
	"github.com/jonathan/diagnostic-engine/internal/llm"
	"github.com/jonathan/diagnostic-engine/internal/questions"
	"github.com/jonathan/diagnostic-engine/internal/report"
	"github.com/jonathan/diagnostic-engine/internal/schemas"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

var generateQuestionsCmd = &cobra.Command{
	Use:   "generate-questions",
	Short: "Draft practice questions for a report's recommendations",
	Long: "Turns each recommended unit of a DiagnosticReport into a question request carrying the band's " +
		"misconceptions on that topic, asks the text-generation service for questions and optionally stores them.",
	RunE: runGenerateQuestions,
}

var (
	generateQuestionsInput  string
	generateQuestionsOutput string
	generateQuestionsBand   string
	generateQuestionsAPIKey string
	generateQuestionsSave   bool
)

// newQuestionClient is replaced in tests.
var newQuestionClient = func(ctx context.Context, apiKey string) (llm.Client, error) {
	return llm.NewClient(ctx, llm.DefaultConfig(), apiKey, state.log)
}

func init() {
	generateQuestionsCmd.Flags().StringVarP(&generateQuestionsInput, "in", "i", "", "Path to input DiagnosticReport JSON file (required)")
	generateQuestionsCmd.Flags().StringVarP(&generateQuestionsOutput, "out", "o", "", "Path to output questions JSON file (stdout when empty)")
	generateQuestionsCmd.Flags().StringVarP(&generateQuestionsBand, "band", "b", "", "Only generate for this band")
	generateQuestionsCmd.Flags().StringVar(&generateQuestionsAPIKey, "api-key", "", "Gemini API key (defaults to "+config.EnvAPIKey+")")
	generateQuestionsCmd.Flags().BoolVar(&generateQuestionsSave, "save", false, "Store generated questions in the database")

	if err := generateQuestionsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(generateQuestionsCmd)
}

func runGenerateQuestions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// 1. Load the report and build requests
	var r types.DiagnosticReport
	if err := readJSON(generateQuestionsInput, "report", &r); err != nil {
		return err
	}
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	if generateQuestionsBand != "" {
		kept := r.Recommendations[:0]
		for _, rec := range r.Recommendations {
			if string(rec.Band) == generateQuestionsBand {
				kept = append(kept, rec)
			}
		}
		r.Recommendations = kept
	}
	requests := report.QuestionRequests(&r, c)
	if len(requests) == 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No recommended units, nothing to generate")
		return writeJSON(cmd, generateQuestionsOutput, []types.Question{})
	}

	// 2. Connect to the service
	apiKey := generateQuestionsAPIKey
	if apiKey == "" {
		apiKey = state.cfg.APIKey
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (use --api-key, api_key in config, or %s)", config.EnvAPIKey)
	}
	client, err := newQuestionClient(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	client = llm.NewRateLimitedClient(client, state.cfg.RequestsPerMinute, state.cfg.Workers)
	defer func() { _ = client.Close() }()

	// 3. Generate per request, bounded by the worker count
	gen := questions.NewGenerator(client, state.log)
	results := make([][]types.Question, len(requests))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(state.cfg.Workers)
	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			qs, err := gen.Generate(gCtx, req)
			if err != nil {
				return fmt.Errorf("failed to generate questions for %q: %w", req.TopicName, err)
			}
			results[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var all []types.Question
	for _, qs := range results {
		all = append(all, qs...)
	}

	// 4. Optionally persist
	if generateQuestionsSave {
		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		ids, err := database.SaveQuestions(ctx, all)
		if err != nil {
			return fmt.Errorf("failed to save questions: %w", err)
		}
		state.log.Info("questions saved", "count", len(ids))
	}

	// 5. Write and validate
	if err := writeJSON(cmd, generateQuestionsOutput, all); err != nil {
		return err
	}
	checkOutput(cmd, schemas.Questions, all)
	return nil
}
