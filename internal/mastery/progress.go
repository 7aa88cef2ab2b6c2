package mastery

import (
	"sort"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// Decide builds the advancement decision for a student at current whose
// most recent score is latest.
func Decide(current types.MasteryLevel, latest float64) types.MasteryStatus {
	status := types.MasteryStatus{
		Current:     current,
		Description: Describe(current),
		LatestScore: latest,
		CanAdvance:  CanAdvance(latest, current),
	}
	if next, ok := NextLevel(current); ok {
		status.Next = &next
	} else if status.CanAdvance {
		status.Enrichment = true
	}
	return status
}

// FromHistory orders a score history by timestamp, places the student at
// the level of their mean clamped score and decides advancement from the
// most recent score. An empty history yields F with no advancement.
func FromHistory(history []types.ScoreRecord) types.MasteryStatus {
	if len(history) == 0 {
		return Decide(types.LevelF, 0)
	}

	ordered := make([]types.ScoreRecord, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	sum := 0.0
	for _, r := range ordered {
		sum += types.ClampScore(r.Score)
	}
	current := ScoreToLevel(sum / float64(len(ordered)))
	latest := types.ClampScore(ordered[len(ordered)-1].Score)
	return Decide(current, latest)
}
