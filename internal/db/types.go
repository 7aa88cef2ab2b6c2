package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// recordRow is one row of the roster join. Record columns are NULL for a
// student with no records.
type recordRow struct {
	StudentID     string
	StudentName   string
	TopicLabel    *string
	StandardLabel *string
	Score         *float64
	Justification *string
	RecordedAt    *time.Time
}

// AssessmentInput describes an assessment to create for one band.
type AssessmentInput struct {
	ClassID string                     `json:"class_id" validate:"required"`
	Band    types.BandID               `json:"band" validate:"required,oneof=advanced proficient developing needs-support"`
	Title   string                     `json:"title,omitempty"`
	Units   []types.RecommendationUnit `json:"units" validate:"dive"`
}

// Assessment is a created assessment and the questions linked to it.
type Assessment struct {
	ID          uuid.UUID      `json:"id"`
	ClassID     string         `json:"class_id"`
	Band        types.BandID   `json:"band"`
	Title       string         `json:"title"`
	QuestionIDs []uuid.UUID    `json:"question_ids"`
	Shortfall   map[string]int `json:"shortfall,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
