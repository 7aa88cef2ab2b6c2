package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/diagnostic-engine/internal/topics"
)

var resolveTopicCmd = &cobra.Command{
	Use:   "resolve-topic",
	Short: "Resolve noisy topic text to a canonical topic name",
	Long:  "Resolves a topic label against the curriculum catalog by standard code, keyword score, clean label, bold span or fallback, and prints the name with the step that produced it.",
	RunE:  runResolveTopic,
}

var (
	resolveTopicText    string
	resolveTopicLabel   string
	resolveTopicSubject string
)

func init() {
	resolveTopicCmd.Flags().StringVarP(&resolveTopicText, "text", "t", "", "Raw topic text (required)")
	resolveTopicCmd.Flags().StringVarP(&resolveTopicLabel, "label", "l", "", "Standard label")
	resolveTopicCmd.Flags().StringVarP(&resolveTopicSubject, "subject", "s", "", "Catalog subject scope (defaults to config subject)")

	if err := resolveTopicCmd.MarkFlagRequired("text"); err != nil {
		panic(fmt.Sprintf("failed to mark text flag as required: %v", err))
	}

	rootCmd.AddCommand(resolveTopicCmd)
}

func runResolveTopic(cmd *cobra.Command, _ []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	subject := resolveTopicSubject
	if subject == "" {
		subject = state.cfg.Subject
	}

	res := topics.NewResolver(c).Resolve(resolveTopicText, resolveTopicLabel, subject)
	state.log.Debug("topic resolved", "name", res.Name, "step", res.Step, "subject", subject)
	return writeJSON(cmd, "", res)
}
