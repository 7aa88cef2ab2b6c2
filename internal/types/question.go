package types

import (
	"github.com/go-playground/validator/v10"
)

// QuestionRequest asks the question-generation collaborator for practice
// items on one recommended topic.
type QuestionRequest struct {
	TopicName       string   `json:"topic_name" validate:"required"`
	StandardCode    string   `json:"standard_code,omitempty"`
	DifficultyLabel string   `json:"difficulty_label" validate:"required"`
	Count           int      `json:"count" validate:"gte=1,lte=20"`
	Misconceptions  []string `json:"misconceptions,omitempty" validate:"max=8"`
}

// Validate validates the QuestionRequest using the validator.
func (r *QuestionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Question is one generated practice item.
type Question struct {
	TopicName       string   `json:"topic_name"`
	Prompt          string   `json:"prompt"`
	Answer          string   `json:"answer,omitempty"`
	DifficultyLabel string   `json:"difficulty_label,omitempty"`
	Targets         []string `json:"targets,omitempty"`
}
