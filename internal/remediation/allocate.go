// Package remediation turns a band's weak topics into a practice plan that
// never exceeds a fixed unit budget.
package remediation

import (
	"github.com/jonathan/diagnostic-engine/internal/types"
)

// DefaultBudget is the per-group unit budget.
const DefaultBudget = 5

var difficultyLabels = map[types.BandID]string{
	types.BandAdvanced:     "On-level practice",
	types.BandProficient:   "Reinforcement practice",
	types.BandDeveloping:   "Foundational practice",
	types.BandNeedsSupport: "Scaffolded practice",
}

// DifficultyLabel returns the practice tier for a band.
func DifficultyLabel(band types.BandID) (string, bool) {
	label, ok := difficultyLabels[band]
	return label, ok
}

// Allocate assigns practice units to weak topics in the order given, which
// is expected to be weakest first. Earlier topics get more units; the total
// never exceeds budget and topics left with no units are dropped.
func Allocate(weak []types.WeakTopic, band types.BandID, budget int) ([]types.RecommendationUnit, error) {
	if budget <= 0 {
		return nil, &BudgetError{Budget: budget}
	}
	label, ok := DifficultyLabel(band)
	if !ok {
		return nil, &UnknownBandError{Band: string(band)}
	}

	tentative := make([]int, len(weak))
	for i := range weak {
		tentative[i] = min(budget-i, budget)
	}

	units := []types.RecommendationUnit{}
	running := 0
	for i, topic := range weak {
		count := min(tentative[i], budget-running)
		if count <= 0 {
			continue
		}
		running += count
		units = append(units, types.RecommendationUnit{
			TopicName:       topic.TopicName,
			DifficultyLabel: label,
			UnitCount:       count,
		})
	}
	return units, nil
}

// AllocateGroups runs Allocate for every band group, in group order.
func AllocateGroups(groups []types.BandGroup, budget int) ([]types.BandRecommendation, error) {
	out := make([]types.BandRecommendation, 0, len(groups))
	for _, g := range groups {
		units, err := Allocate(g.WeakTopics, g.Band.ID, budget)
		if err != nil {
			return nil, err
		}
		out = append(out, types.BandRecommendation{Band: g.Band.ID, Units: units})
	}
	return out, nil
}
