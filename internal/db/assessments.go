package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// SaveQuestions stores generated questions and returns their new IDs in
// input order.
func (db *DB) SaveQuestions(ctx context.Context, questions []types.Question) ([]uuid.UUID, error) {
	batch := &pgx.Batch{}
	ids := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		ids[i] = uuid.New()
		batch.Queue(
			`INSERT INTO questions (id, topic_name, difficulty_label, prompt, answer)
			 VALUES ($1, $2, $3, $4, $5)`,
			ids[i], q.TopicName, q.DifficultyLabel, q.Prompt, nullIfEmpty(q.Answer),
		)
	}

	results := db.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range questions {
		if _, err := results.Exec(); err != nil {
			return nil, fmt.Errorf("failed to save question: %w", err)
		}
	}
	return ids, nil
}

// CreateAssessment persists an assessment for one band and links up to
// UnitCount existing questions per recommended topic, oldest first. Topics
// without enough stored questions are reported in Shortfall.
func (db *DB) CreateAssessment(ctx context.Context, input AssessmentInput) (*Assessment, error) {
	if err := validator.New().Struct(input); err != nil {
		return nil, fmt.Errorf("invalid assessment input: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	a := &Assessment{
		ID:          uuid.New(),
		ClassID:     input.ClassID,
		Band:        input.Band,
		Title:       assessmentTitle(input),
		QuestionIDs: []uuid.UUID{},
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO assessments (id, class_id, band, title)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		a.ID, a.ClassID, string(a.Band), a.Title,
	).Scan(&a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	for _, unit := range input.Units {
		found, err := selectQuestions(ctx, tx, unit)
		if err != nil {
			return nil, err
		}
		if missing := unit.UnitCount - len(found); missing > 0 {
			if a.Shortfall == nil {
				a.Shortfall = make(map[string]int)
			}
			a.Shortfall[unit.TopicName] += missing
		}
		for _, qid := range found {
			_, err := tx.Exec(ctx,
				`INSERT INTO assessment_questions (assessment_id, question_id, position)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (assessment_id, question_id) DO NOTHING`,
				a.ID, qid, len(a.QuestionIDs)+1,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to link question %s: %w", qid, err)
			}
			a.QuestionIDs = append(a.QuestionIDs, qid)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit assessment: %w", err)
	}
	return a, nil
}

// GetAssessmentQuestions returns the question IDs linked to an assessment
// in position order.
func (db *DB) GetAssessmentQuestions(ctx context.Context, assessmentID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT question_id FROM assessment_questions
		 WHERE assessment_id = $1
		 ORDER BY position`,
		assessmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment questions: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func selectQuestions(ctx context.Context, tx pgx.Tx, unit types.RecommendationUnit) ([]uuid.UUID, error) {
	if unit.UnitCount <= 0 {
		return nil, nil
	}
	rows, err := tx.Query(ctx,
		`SELECT id FROM questions
		 WHERE topic_name = $1 AND difficulty_label = $2
		 ORDER BY created_at, id
		 LIMIT $3`,
		unit.TopicName, unit.DifficultyLabel, unit.UnitCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select questions for %s: %w", unit.TopicName, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan questions for %s: %w", unit.TopicName, err)
	}
	return ids, nil
}

func assessmentTitle(input AssessmentInput) string {
	if t := strings.TrimSpace(input.Title); t != "" {
		return t
	}
	return fmt.Sprintf("%s practice: %s", input.ClassID, input.Band)
}
