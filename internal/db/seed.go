package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// SaveClassRoster upserts a class, its students and appends their records.
func (db *DB) SaveClassRoster(ctx context.Context, roster *types.ClassRoster) error {
	if err := roster.Validate(); err != nil {
		return fmt.Errorf("invalid roster: %w", err)
	}
	if roster.ClassID == "" {
		return fmt.Errorf("invalid roster: class_id is required to store a roster")
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO classes (id, subject) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET subject = $2`,
		roster.ClassID, roster.Subject,
	)
	if err != nil {
		return fmt.Errorf("failed to save class %s: %w", roster.ClassID, err)
	}

	for _, s := range roster.Students {
		_, err = tx.Exec(ctx,
			`INSERT INTO students (id, class_id, name) VALUES ($1, $2, $3)
			 ON CONFLICT (id) DO UPDATE SET class_id = $2, name = $3`,
			s.ID, roster.ClassID, s.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to save student %s: %w", s.ID, err)
		}
		for _, r := range s.Records {
			_, err = tx.Exec(ctx,
				`INSERT INTO score_records (student_id, topic_label, standard_label, score, justification, recorded_at)
				 VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))`,
				s.ID, r.TopicLabel, nullIfEmpty(r.StandardLabel), types.ClampScore(r.Score),
				nullIfEmpty(r.Justification), timeOrNil(r),
			)
			if err != nil {
				return fmt.Errorf("failed to save record for %s: %w", s.ID, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit roster: %w", err)
	}
	return nil
}

// SaveCatalog upserts curriculum entries keyed by subject.
func (db *DB) SaveCatalog(ctx context.Context, subjects map[string][]types.CurriculumEntry) error {
	batch := &pgx.Batch{}
	n := 0
	for subject, entries := range subjects {
		for _, e := range entries {
			batch.Queue(
				`INSERT INTO curriculum_entries (subject, standard_code, canonical_name, keywords)
				 VALUES ($1, $2, $3, $4)
				 ON CONFLICT (subject, standard_code) DO UPDATE SET canonical_name = $3, keywords = $4`,
				subject, e.StandardCode, e.CanonicalName, e.Keywords,
			)
			n++
		}
	}

	results := db.pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < n; i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save catalog entry: %w", err)
		}
	}
	return nil
}

func timeOrNil(r types.ScoreRecord) any {
	if r.Timestamp.IsZero() {
		return nil
	}
	return r.Timestamp
}
