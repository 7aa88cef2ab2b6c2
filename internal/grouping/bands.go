// Package grouping buckets students into fixed performance bands and finds
// each band's weakest topics.
package grouping

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// Bands is the fixed band table, scanned in order. Ranges are closed and
// must tile [0,100] without overlap.
var Bands = []types.PerformanceBand{
	{
		ID:          types.BandAdvanced,
		Label:       "Advanced",
		Description: "Consistently demonstrates mastery; ready for extension work.",
		Min:         85,
		Max:         100,
	},
	{
		ID:          types.BandProficient,
		Label:       "Proficient",
		Description: "Solid grasp of most topics with isolated gaps.",
		Min:         70,
		Max:         84,
	},
	{
		ID:          types.BandDeveloping,
		Label:       "Developing",
		Description: "Partial understanding; needs targeted practice on core skills.",
		Min:         55,
		Max:         69,
	},
	{
		ID:          types.BandNeedsSupport,
		Label:       "Needs Support",
		Description: "Significant gaps; needs scaffolded reteaching.",
		Min:         0,
		Max:         54,
	},
}

// BandError reports a malformed band table.
type BandError struct {
	Message string
}

func (e *BandError) Error() string {
	return fmt.Sprintf("invalid band table: %s", e.Message)
}

// CheckBands verifies that the bands are non-empty closed ranges that tile
// [0,100] contiguously with no overlap.
func CheckBands(bands []types.PerformanceBand) error {
	if len(bands) == 0 {
		return &BandError{Message: "no bands defined"}
	}

	sorted := make([]types.PerformanceBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	for i, b := range sorted {
		if b.Min > b.Max {
			return &BandError{Message: fmt.Sprintf("band %s has min %d above max %d", b.ID, b.Min, b.Max)}
		}
		if i == 0 {
			if b.Min != int(types.MinScore) {
				return &BandError{Message: fmt.Sprintf("lowest band %s starts at %d, not 0", b.ID, b.Min)}
			}
			continue
		}
		prev := sorted[i-1]
		switch {
		case b.Min <= prev.Max:
			return &BandError{Message: fmt.Sprintf("bands %s and %s overlap", prev.ID, b.ID)}
		case b.Min != prev.Max+1:
			return &BandError{Message: fmt.Sprintf("gap between bands %s and %s", prev.ID, b.ID)}
		}
	}

	if last := sorted[len(sorted)-1]; last.Max != int(types.MaxScore) {
		return &BandError{Message: fmt.Sprintf("highest band %s ends at %d, not 100", last.ID, last.Max)}
	}
	return nil
}

// BandFor returns the band containing score. Scores are rounded to the
// nearest integer first so that every value in [0,100] lands in exactly one
// closed integer range.
func BandFor(score float64) (types.PerformanceBand, bool) {
	if math.IsNaN(score) {
		return types.PerformanceBand{}, false
	}
	rounded := int(math.Round(score))
	for _, b := range Bands {
		if b.Contains(rounded) {
			return b, true
		}
	}
	return types.PerformanceBand{}, false
}

// Lookup returns the band with the given ID.
func Lookup(id types.BandID) (types.PerformanceBand, bool) {
	for _, b := range Bands {
		if b.ID == id {
			return b, true
		}
	}
	return types.PerformanceBand{}, false
}
