package db

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

func ptr[T any](v T) *T { return &v }

func TestGroupRecords(t *testing.T) {
	ts := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	rows := []recordRow{
		{StudentID: "s1", StudentName: "Ana", TopicLabel: ptr("Slope"), Score: ptr(80.0), RecordedAt: &ts},
		{StudentID: "s1", StudentName: "Ana", TopicLabel: ptr("Factoring"), StandardLabel: ptr("A-SSE.A.2"),
			Score: ptr(140.0), Justification: ptr("Sign error.")},
		{StudentID: "s2", StudentName: "Ben"},
	}

	got := groupRecords(rows)

	want := []types.StudentRecords{
		{
			ID:   "s1",
			Name: "Ana",
			Records: []types.ScoreRecord{
				{TopicLabel: "Slope", Score: 80, Timestamp: ts},
				{TopicLabel: "Factoring", StandardLabel: "A-SSE.A.2", Score: 100, Justification: "Sign error."},
			},
		},
		{ID: "s2", Name: "Ben", Records: []types.ScoreRecord{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groupRecords() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupRecords_Empty(t *testing.T) {
	assert.Empty(t, groupRecords(nil))
}

func TestAssessmentTitle(t *testing.T) {
	assert.Equal(t, "Unit 3 retake", assessmentTitle(AssessmentInput{ClassID: "c1", Title: "  Unit 3 retake "}))
	assert.Equal(t, "c1 practice: developing", assessmentTitle(AssessmentInput{ClassID: "c1", Band: types.BandDeveloping}))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", *nullIfEmpty("x"))
	assert.Equal(t, "", deref(nil))
}

func TestMigrationCoversTables(t *testing.T) {
	for _, table := range []string{"classes", "students", "score_records", "curriculum_entries", "questions", "assessments", "assessment_questions"} {
		assert.True(t, strings.Contains(migration001Up, "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
}
