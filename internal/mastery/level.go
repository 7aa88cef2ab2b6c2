// Package mastery maps scores to letter levels and decides when a student
// may advance.
package mastery

import (
	"github.com/jonathan/diagnostic-engine/internal/types"
)

type threshold struct {
	level       types.MasteryLevel
	min         float64
	description string
}

// thresholds are scanned highest first; F is the floor.
var thresholds = []threshold{
	{types.LevelA, 95, "Mastered: ready for enrichment and extension work."},
	{types.LevelB, 85, "Strong: minor errors, ready for harder problems."},
	{types.LevelC, 75, "Competent: understands the core ideas with some gaps."},
	{types.LevelD, 65, "Emerging: partial understanding, needs guided practice."},
	{types.LevelE, 55, "Beginning: frequent errors on foundational skills."},
	{types.LevelF, 0, "Not yet: needs reteaching before independent practice."},
}

// order lists levels lowest to highest.
var order = []types.MasteryLevel{
	types.LevelF,
	types.LevelE,
	types.LevelD,
	types.LevelC,
	types.LevelB,
	types.LevelA,
}

// ScoreToLevel maps any score to exactly one level. Scores below every
// threshold, including NaN and negatives, are F.
func ScoreToLevel(score float64) types.MasteryLevel {
	for _, t := range thresholds {
		if score >= t.min {
			return t.level
		}
	}
	return types.LevelF
}

// Describe returns the fixed description of a level.
func Describe(level types.MasteryLevel) string {
	for _, t := range thresholds {
		if t.level == level {
			return t.description
		}
	}
	return ""
}

// NextLevel returns the level above current. A has no next level.
func NextLevel(current types.MasteryLevel) (types.MasteryLevel, bool) {
	for i, l := range order {
		if l == current && i+1 < len(order) {
			return order[i+1], true
		}
	}
	return "", false
}

// CanAdvance reports whether a student may move on: only a perfect latest
// score advances, and a student already at A is always routed onward to
// enrichment.
func CanAdvance(latest float64, current types.MasteryLevel) bool {
	return latest == types.MaxScore || current == types.LevelA
}

// IsValid reports whether level is one of the six known levels.
func IsValid(level types.MasteryLevel) bool {
	for _, l := range order {
		if l == level {
			return true
		}
	}
	return false
}
