package types

import (
	"time"

	"github.com/google/uuid"
)

// ResolvedRecord is a ScoreRecord with display-ready topic and standard fields.
type ResolvedRecord struct {
	TopicName      string          `json:"topic_name"`
	StandardCode   string          `json:"standard_code,omitempty"`
	Score          float64         `json:"score"`
	Timestamp      time.Time       `json:"timestamp"`
	Misconceptions []Misconception `json:"misconceptions,omitempty"`
}

// StudentDiagnostic collects everything the engine derives for one student.
type StudentDiagnostic struct {
	StudentID      string           `json:"student_id"`
	Name           string           `json:"name,omitempty"`
	OverallScore   float64          `json:"overall_score"`
	Band           BandID           `json:"band,omitempty"`
	Records        []ResolvedRecord `json:"records"`
	Misconceptions []Misconception  `json:"misconceptions"`
	Mastery        *MasteryStatus   `json:"mastery,omitempty"`
}

// DiagnosticReport is the class-level output of a full engine run.
type DiagnosticReport struct {
	ID              uuid.UUID            `json:"id"`
	ClassID         string               `json:"class_id,omitempty"`
	Subject         string               `json:"subject"`
	Budget          int                  `json:"budget"`
	Groups          []BandGroup          `json:"groups"`
	Recommendations []BandRecommendation `json:"recommendations"`
	Students        []StudentDiagnostic  `json:"students"`
	Excluded        []string             `json:"excluded,omitempty"`
}
