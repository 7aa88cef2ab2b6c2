// Package questions drafts practice questions for recommended topics by
// calling the remote text-generation service.
package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/diagnostic-engine/internal/llm"
	"github.com/jonathan/diagnostic-engine/internal/logging"
	"github.com/jonathan/diagnostic-engine/internal/prompts"
	"github.com/jonathan/diagnostic-engine/internal/schemas"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

// DefaultAttempts is how many times a failed call is tried before giving up.
const DefaultAttempts = 3

var questionSchema = llm.OutputSchema{
	Name:  "Question",
	Array: true,
	Fields: []llm.SchemaField{
		{Name: "prompt", Required: true, Description: "the question as shown to the student"},
		{Name: "answer", Required: true, Description: "the expected answer, briefly worked"},
		{Name: "targets", Type: `["string"]`, Description: "misconceptions this question probes, copied from the list"},
	},
}

// Generator builds prompts and parses generated questions.
type Generator struct {
	client   llm.Client
	tier     llm.ModelTier
	attempts int
	backoff  time.Duration
	log      *logging.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTier selects the model tier.
func WithTier(tier llm.ModelTier) Option {
	return func(g *Generator) { g.tier = tier }
}

// WithRetry sets the attempt count and the base delay between attempts.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(g *Generator) {
		if attempts > 0 {
			g.attempts = attempts
		}
		g.backoff = backoff
	}
}

// NewGenerator returns a Generator using client. A nil log discards output.
func NewGenerator(client llm.Client, log *logging.Logger, opts ...Option) *Generator {
	if log == nil {
		log = logging.Nop()
	}
	g := &Generator{
		client:   client,
		tier:     llm.TierStandard,
		attempts: DefaultAttempts,
		backoff:  time.Second,
		log:      log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildPrompt renders the prompt for req. Misconceptions, when present,
// are listed most severe first and select the targeted template.
func BuildPrompt(req types.QuestionRequest) string {
	key := prompts.KeyPracticeQuestions
	var list strings.Builder
	if len(req.Misconceptions) > 0 {
		key = prompts.KeyMisconceptionTargeted
		for i, m := range req.Misconceptions {
			fmt.Fprintf(&list, "%d. %s\n", i+1, m)
		}
	}

	standard := req.StandardCode
	if standard == "" {
		standard = "unspecified"
	}
	task := prompts.Format(prompts.MustGet(prompts.QuestionsFile, key), map[string]string{
		"Topic":          req.TopicName,
		"Standard":       standard,
		"Difficulty":     req.DifficultyLabel,
		"Count":          strconv.Itoa(req.Count),
		"Misconceptions": strings.TrimRight(list.String(), "\n"),
	})

	schema := questionSchema
	schema.Description = task
	return llm.BuildJSONPrompt(schema, fmt.Sprintf("Topic: %s", req.TopicName))
}

// Generate asks the service for req.Count questions. Calls that fail or
// return unusable output are retried with a linear backoff.
func (g *Generator) Generate(ctx context.Context, req types.QuestionRequest) ([]types.Question, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid question request: %w", err)
	}
	prompt := BuildPrompt(req)

	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		if attempt > 1 {
			if err := ctx.Err(); err != nil {
				return nil, &GenerationError{Message: "cancelled", Cause: err}
			}
			select {
			case <-ctx.Done():
				return nil, &GenerationError{Message: "cancelled", Cause: ctx.Err()}
			case <-time.After(time.Duration(attempt-1) * g.backoff):
			}
		}

		raw, err := g.client.GenerateJSON(ctx, prompt, g.tier)
		if err != nil {
			lastErr = &GenerationError{Message: "service call", Cause: err}
		} else {
			out, perr := Parse(raw, req)
			if perr == nil {
				g.log.Debug("questions generated", "topic", req.TopicName, "count", len(out), "attempt", attempt)
				return out, nil
			}
			lastErr = perr
		}
		g.log.Warn("question generation attempt failed", "topic", req.TopicName, "attempt", attempt, "error", lastErr)
	}
	return nil, lastErr
}

// Parse decodes a JSON array of questions, fills in the request's topic
// and difficulty, drops items without a prompt and caps to req.Count.
func Parse(raw string, req types.QuestionRequest) ([]types.Question, error) {
	var items []types.Question
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &items); err != nil {
		return nil, &GenerationError{Message: "response is not a JSON array", Cause: err}
	}

	out := make([]types.Question, 0, len(items))
	for _, q := range items {
		q.Prompt = strings.TrimSpace(q.Prompt)
		if q.Prompt == "" {
			continue
		}
		q.TopicName = req.TopicName
		if q.DifficultyLabel == "" {
			q.DifficultyLabel = req.DifficultyLabel
		}
		out = append(out, q)
		if len(out) == req.Count {
			break
		}
	}
	if len(out) == 0 {
		return nil, &GenerationError{Message: "response held no usable questions"}
	}
	if err := schemas.ValidateValue(schemas.Questions, out); err != nil {
		return nil, &GenerationError{Message: "questions failed schema validation", Cause: err}
	}
	return out, nil
}
