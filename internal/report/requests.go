package report

import (
	"github.com/jonathan/diagnostic-engine/internal/catalog"
	"github.com/jonathan/diagnostic-engine/internal/misconceptions"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

// QuestionRequests turns a report's recommendations into one question
// request per recommended topic. Each request carries the misconceptions
// the band's members showed on that topic, most severe first.
func QuestionRequests(r *types.DiagnosticReport, c *catalog.Catalog) []types.QuestionRequest {
	codes := make(map[string]string)
	for _, e := range c.Entries(r.Subject) {
		if _, ok := codes[e.CanonicalName]; !ok {
			codes[e.CanonicalName] = e.StandardCode
		}
	}

	byBand := make(map[types.BandID][]types.StudentDiagnostic)
	for _, s := range r.Students {
		if s.Band != "" {
			byBand[s.Band] = append(byBand[s.Band], s)
		}
	}

	var out []types.QuestionRequest
	for _, rec := range r.Recommendations {
		for _, unit := range rec.Units {
			var lists [][]types.Misconception
			for _, s := range byBand[rec.Band] {
				for _, res := range s.Records {
					if res.TopicName == unit.TopicName && len(res.Misconceptions) > 0 {
						lists = append(lists, res.Misconceptions)
					}
				}
			}

			out = append(out, types.QuestionRequest{
				TopicName:       unit.TopicName,
				StandardCode:    codes[unit.TopicName],
				DifficultyLabel: unit.DifficultyLabel,
				Count:           unit.UnitCount,
				Misconceptions:  misconceptions.Texts(misconceptions.Merge(lists...)),
			})
		}
	}
	return out
}
