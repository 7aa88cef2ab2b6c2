// Package db provides PostgreSQL access for score records, the curriculum
// catalog, generated questions and assessments.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// GetClassRoster loads a class and every student's score records, oldest
// first. Returns nil if the class does not exist.
func (db *DB) GetClassRoster(ctx context.Context, classID string) (*types.ClassRoster, error) {
	roster := &types.ClassRoster{ClassID: classID}
	err := db.pool.QueryRow(ctx,
		`SELECT subject FROM classes WHERE id = $1`, classID,
	).Scan(&roster.Subject)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get class %s: %w", classID, err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT s.id, s.name, r.topic_label, r.standard_label, r.score, r.justification, r.recorded_at
		 FROM students s
		 LEFT JOIN score_records r ON r.student_id = s.id
		 WHERE s.class_id = $1
		 ORDER BY s.id, r.recorded_at, r.id`,
		classID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list score records: %w", err)
	}
	defer rows.Close()

	var scanned []recordRow
	for rows.Next() {
		var r recordRow
		if err := rows.Scan(&r.StudentID, &r.StudentName, &r.TopicLabel, &r.StandardLabel,
			&r.Score, &r.Justification, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		scanned = append(scanned, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating score records: %w", err)
	}

	roster.Students = groupRecords(scanned)
	return roster, nil
}

// ListCatalog returns every curriculum entry keyed by subject.
func (db *DB) ListCatalog(ctx context.Context) (map[string][]types.CurriculumEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT subject, standard_code, canonical_name, keywords
		 FROM curriculum_entries
		 ORDER BY subject, standard_code`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	defer rows.Close()

	subjects := make(map[string][]types.CurriculumEntry)
	for rows.Next() {
		var subject string
		var e types.CurriculumEntry
		if err := rows.Scan(&subject, &e.StandardCode, &e.CanonicalName, &e.Keywords); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		subjects[subject] = append(subjects[subject], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}
	return subjects, nil
}
