package db

import (
	"context"
	"fmt"
)

const migration001Up = `
CREATE TABLE IF NOT EXISTS classes (
    id TEXT PRIMARY KEY,
    subject TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS students (
    id TEXT PRIMARY KEY,
    class_id TEXT NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
    name TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_students_class_id ON students(class_id);

CREATE TABLE IF NOT EXISTS score_records (
    id BIGSERIAL PRIMARY KEY,
    student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
    topic_label TEXT NOT NULL,
    standard_label TEXT,
    score DOUBLE PRECISION NOT NULL,
    justification TEXT,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_score CHECK (score >= 0 AND score <= 100)
);

CREATE INDEX IF NOT EXISTS idx_score_records_student ON score_records(student_id, recorded_at);

CREATE TABLE IF NOT EXISTS curriculum_entries (
    subject TEXT NOT NULL,
    standard_code TEXT NOT NULL,
    canonical_name TEXT NOT NULL,
    keywords TEXT[] NOT NULL DEFAULT '{}',

    PRIMARY KEY (subject, standard_code)
);

CREATE TABLE IF NOT EXISTS questions (
    id UUID PRIMARY KEY,
    topic_name TEXT NOT NULL,
    difficulty_label TEXT NOT NULL,
    prompt TEXT NOT NULL,
    answer TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions(topic_name, difficulty_label, created_at);

CREATE TABLE IF NOT EXISTS assessments (
    id UUID PRIMARY KEY,
    class_id TEXT NOT NULL,
    band TEXT NOT NULL,
    title TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

    CONSTRAINT valid_band CHECK (band IN ('advanced', 'proficient', 'developing', 'needs-support'))
);

CREATE TABLE IF NOT EXISTS assessment_questions (
    assessment_id UUID NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
    question_id UUID NOT NULL REFERENCES questions(id),
    position INTEGER NOT NULL,

    PRIMARY KEY (assessment_id, question_id)
);
`

// Migrate creates the tables the store needs. It is safe to run repeatedly.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, migration001Up); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
