// Package report runs the full diagnostic flow for a class: topic
// resolution, grouping, remediation allocation, misconception mining and
// mastery decisions.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/diagnostic-engine/internal/catalog"
	"github.com/jonathan/diagnostic-engine/internal/grouping"
	"github.com/jonathan/diagnostic-engine/internal/logging"
	"github.com/jonathan/diagnostic-engine/internal/mastery"
	"github.com/jonathan/diagnostic-engine/internal/misconceptions"
	"github.com/jonathan/diagnostic-engine/internal/remediation"
	"github.com/jonathan/diagnostic-engine/internal/topics"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

const tracerName = "github.com/jonathan/diagnostic-engine/internal/report"

// DefaultWorkers bounds concurrent per-student work when Options.Workers is unset.
const DefaultWorkers = 4

// Options tune a report run.
type Options struct {
	// Subject overrides the roster's subject scope when set.
	Subject string
	// Budget is the unit budget per band; 0 means remediation.DefaultBudget.
	Budget  int
	Workers int
}

// Builder produces class reports against a read-only catalog.
type Builder struct {
	catalog  *catalog.Catalog
	resolver *topics.Resolver
	log      *logging.Logger
	tracer   trace.Tracer
}

// NewBuilder creates a Builder. A nil log discards output.
func NewBuilder(c *catalog.Catalog, log *logging.Logger) *Builder {
	if log == nil {
		log = logging.Nop()
	}
	return &Builder{
		catalog:  c,
		resolver: topics.NewResolver(c),
		log:      log,
		tracer:   otel.Tracer(tracerName),
	}
}

// Build produces the diagnostic report for a roster.
func (b *Builder) Build(ctx context.Context, roster *types.ClassRoster, opts Options) (*types.DiagnosticReport, error) {
	if err := roster.Validate(); err != nil {
		return nil, fmt.Errorf("invalid roster: %w", err)
	}

	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		subject = roster.Subject
	}
	budget := opts.Budget
	if budget == 0 {
		budget = remediation.DefaultBudget
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	ctx, span := b.tracer.Start(ctx, "report.Build", trace.WithAttributes(
		attribute.String("class_id", roster.ClassID),
		attribute.String("subject", subject),
		attribute.Int("students", len(roster.Students)),
		attribute.Int("budget", budget),
	))
	defer span.End()

	log := b.log.With("class_id", roster.ClassID, "subject", subject)
	if !b.catalog.HasScope(subject) {
		log.Warn("subject not in catalog, resolving against all subjects")
	}

	diagnostics, err := b.diagnoseAll(ctx, roster.Students, subject, workers, log)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "diagnose students")
		return nil, err
	}

	students, topicList := attemptsFor(diagnostics, b.catalog.Topics(subject))
	groups, err := grouping.GroupStudents(students, topicList)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "group students")
		return nil, fmt.Errorf("failed to group students: %w", err)
	}

	recs, err := remediation.AllocateGroups(groups, budget)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "allocate")
		return nil, fmt.Errorf("failed to allocate remediation: %w", err)
	}

	excluded := assignBands(diagnostics, groups)
	for _, id := range excluded {
		log.Debug("student has no scored work, left out of grouping", "student_id", id)
	}

	report := &types.DiagnosticReport{
		ID:              uuid.New(),
		ClassID:         roster.ClassID,
		Subject:         subject,
		Budget:          budget,
		Groups:          groups,
		Recommendations: recs,
		Students:        diagnostics,
		Excluded:        excluded,
	}
	span.SetAttributes(attribute.String("report_id", report.ID.String()), attribute.Int("excluded", len(excluded)))
	log.Info("report built", "report_id", report.ID, "students", len(diagnostics), "excluded", len(excluded))
	return report, nil
}

// diagnoseAll runs Diagnose for every student with at most workers in
// flight. Output order matches input order.
func (b *Builder) diagnoseAll(ctx context.Context, students []types.StudentRecords, subject string, workers int, log *logging.Logger) ([]types.StudentDiagnostic, error) {
	out := make([]types.StudentDiagnostic, len(students))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range students {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out[i] = b.Diagnose(students[i], subject, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to diagnose students: %w", err)
	}
	return out, nil
}

// Diagnose resolves one student's records and mines their justifications.
// Records are reported most recent first; unclamped scores are clamped.
func (b *Builder) Diagnose(s types.StudentRecords, subject string, log *logging.Logger) types.StudentDiagnostic {
	records := make([]types.ScoreRecord, len(s.Records))
	copy(records, s.Records)
	for i := range records {
		if clamped := types.ClampScore(records[i].Score); clamped != records[i].Score {
			log.Warn("score out of range, clamped", "student_id", s.ID, "topic", records[i].TopicLabel, "score", records[i].Score)
			records[i].Score = clamped
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	d := types.StudentDiagnostic{
		StudentID: s.ID,
		Name:      s.Name,
		Records:   make([]types.ResolvedRecord, 0, len(records)),
	}

	lists := make([][]types.Misconception, 0, len(records))
	for _, r := range records {
		res := b.resolver.Resolve(r.TopicLabel, r.StandardLabel, subject)
		found := misconceptions.Extract(r.Justification)
		lists = append(lists, found)

		d.Records = append(d.Records, types.ResolvedRecord{
			TopicName:      res.Name,
			StandardCode:   res.StandardCode,
			Score:          r.Score,
			Timestamp:      r.Timestamp,
			Misconceptions: found,
		})
	}
	d.OverallScore = s.Overall()
	d.Misconceptions = misconceptions.Merge(lists...)

	status := mastery.FromHistory(records)
	d.Mastery = &status
	return d
}

// attemptsFor converts diagnostics into the grouper's view. Resolved topics
// missing from the catalog are appended after catalog topics in first-seen
// order so they can still surface as weak.
func attemptsFor(diagnostics []types.StudentDiagnostic, catalogTopics []types.Topic) ([]types.Student, []types.Topic) {
	topicList := make([]types.Topic, 0, len(catalogTopics))
	known := make(map[string]bool, len(catalogTopics))
	for _, t := range catalogTopics {
		topicList = append(topicList, t)
		known[t.ID] = true
	}

	students := make([]types.Student, 0, len(diagnostics))
	for _, d := range diagnostics {
		s := types.Student{
			ID:             d.StudentID,
			Name:           d.Name,
			OverallMastery: d.OverallScore,
			Attempts:       make([]types.TopicAttempt, 0, len(d.Records)),
		}
		for _, r := range d.Records {
			s.Attempts = append(s.Attempts, types.TopicAttempt{TopicID: r.TopicName, Score: r.Score})
			if !known[r.TopicName] {
				known[r.TopicName] = true
				topicList = append(topicList, types.Topic{ID: r.TopicName, Name: r.TopicName})
			}
		}
		students = append(students, s)
	}
	return students, topicList
}

// assignBands copies each student's band onto their diagnostic and returns
// the IDs of students left out of every band.
func assignBands(diagnostics []types.StudentDiagnostic, groups []types.BandGroup) []string {
	bandOf := make(map[string]types.BandID)
	for _, g := range groups {
		for _, m := range g.Members {
			bandOf[m.ID] = g.Band.ID
		}
	}

	excluded := []string{}
	for i := range diagnostics {
		band, ok := bandOf[diagnostics[i].StudentID]
		if !ok {
			excluded = append(excluded, diagnostics[i].StudentID)
			continue
		}
		diagnostics[i].Band = band
	}
	return excluded
}
