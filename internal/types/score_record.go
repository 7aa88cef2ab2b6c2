// Package types provides type definitions for structured data used throughout the diagnostic engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// MinScore is the lowest valid score.
	MinScore = 0.0
	// MaxScore is the highest valid score.
	MaxScore = 100.0
)

// ScoreRecord is a single graded attempt as supplied by the record store.
// StandardLabel and Justification are optional; empty means absent.
type ScoreRecord struct {
	TopicLabel    string    `json:"topic_label"`
	StandardLabel string    `json:"standard_label,omitempty"`
	Score         float64   `json:"score" validate:"gte=0,lte=100"`
	Justification string    `json:"justification,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewScoreRecord builds a ScoreRecord with the score clamped into [0,100].
func NewScoreRecord(topicLabel, standardLabel string, score float64, justification string, ts time.Time) ScoreRecord {
	return ScoreRecord{
		TopicLabel:    topicLabel,
		StandardLabel: standardLabel,
		Score:         ClampScore(score),
		Justification: justification,
		Timestamp:     ts,
	}
}

// Validate validates the ScoreRecord using the validator.
func (r *ScoreRecord) Validate() error {
	if math.IsNaN(r.Score) {
		return &ScoreRangeError{Field: "score", Value: r.Score}
	}
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return &ScoreRangeError{Field: "score", Value: r.Score, Cause: err}
	}
	return nil
}

// ClampScore forces a score into [0,100]. NaN clamps to 0.
func ClampScore(score float64) float64 {
	if math.IsNaN(score) || score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// CheckScore reports a ScoreRangeError for scores that were never clamped.
func CheckScore(field string, score float64) error {
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return &ScoreRangeError{Field: field, Value: score}
	}
	return nil
}

// ScoreRangeError is returned when a caller passes a score outside [0,100].
type ScoreRangeError struct {
	Field string
	Value float64
	Cause error
}

func (e *ScoreRangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("score out of range in %s: %v: %v", e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("score out of range in %s: %v", e.Field, e.Value)
}

func (e *ScoreRangeError) Unwrap() error {
	return e.Cause
}

// StudentRecords is one student's raw record history as fetched from the store.
type StudentRecords struct {
	ID      string        `json:"id" validate:"required"`
	Name    string        `json:"name,omitempty"`
	Records []ScoreRecord `json:"records" validate:"dive"`
}

// Validate validates the StudentRecords using the validator.
func (s *StudentRecords) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// Overall returns the mean of the student's clamped record scores.
// A student with no records has an overall score of 0, which the grouper
// treats as "no data".
func (s *StudentRecords) Overall() float64 {
	if len(s.Records) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range s.Records {
		total += ClampScore(r.Score)
	}
	return total / float64(len(s.Records))
}

// ClassRoster is the input document for a class-level diagnostic run.
type ClassRoster struct {
	ClassID  string           `json:"class_id,omitempty"`
	Subject  string           `json:"subject" validate:"required"`
	Students []StudentRecords `json:"students" validate:"dive"`
}

// Validate validates the ClassRoster using the validator.
func (c *ClassRoster) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
