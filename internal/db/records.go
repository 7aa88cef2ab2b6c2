package db

import (
	"time"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// groupRecords folds ordered roster rows into per-student record lists,
// keeping first-seen student order.
func groupRecords(rows []recordRow) []types.StudentRecords {
	students := []types.StudentRecords{}
	index := make(map[string]int)

	for _, r := range rows {
		i, ok := index[r.StudentID]
		if !ok {
			i = len(students)
			index[r.StudentID] = i
			students = append(students, types.StudentRecords{
				ID:      r.StudentID,
				Name:    r.StudentName,
				Records: []types.ScoreRecord{},
			})
		}
		if r.TopicLabel == nil || r.Score == nil {
			continue
		}

		var ts time.Time
		if r.RecordedAt != nil {
			ts = *r.RecordedAt
		}
		rec := types.NewScoreRecord(*r.TopicLabel, deref(r.StandardLabel), *r.Score, deref(r.Justification), ts)
		students[i].Records = append(students[i].Records, rec)
	}
	return students
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
