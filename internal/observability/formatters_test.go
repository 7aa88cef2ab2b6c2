package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

func sampleGroups() []types.BandGroup {
	return []types.BandGroup{
		{
			Band:    types.PerformanceBand{ID: types.BandAdvanced, Label: "Advanced", Min: 85, Max: 100},
			Members: []types.Student{{ID: "a"}},
			WeakTopics: []types.WeakTopic{
				{TopicID: "Quadratic Formula", TopicName: "Quadratic Formula", AverageScore: 88},
			},
		},
		{
			Band: types.PerformanceBand{ID: types.BandProficient, Label: "Proficient", Min: 70, Max: 84},
		},
	}
}

func TestPrintGroups(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintGroups(sampleGroups())
	output := buf.String()

	assert.Contains(t, output, "PERFORMANCE BANDS")
	assert.Contains(t, output, "Advanced [85-100]: 1 student(s)")
	assert.Contains(t, output, "Quadratic Formula (88.0)")
	assert.Contains(t, output, "Proficient [70-84]: 0 student(s)")
}

func TestPrintGroups_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintGroups(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]types.BandRecommendation{
		{Band: types.BandAdvanced, Units: []types.RecommendationUnit{}},
		{Band: types.BandNeedsSupport, Units: []types.RecommendationUnit{
			{TopicName: "Slope and Rate of Change", DifficultyLabel: "Scaffolded practice", UnitCount: 5},
		}},
	})
	output := buf.String()

	assert.Contains(t, output, "RECOMMENDATIONS")
	assert.Contains(t, output, "needs-support (5 unit(s))")
	assert.Contains(t, output, "5 × Slope and Rate of Change, Scaffolded practice")
	assert.NotContains(t, output, "advanced")

	buf.Reset()
	p.PrintRecommendations([]types.BandRecommendation{{Band: types.BandAdvanced}})
	assert.Empty(t, buf.String())
}

func TestPrintMisconceptions(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMisconceptions("cy", []types.Misconception{
		{Text: "There was a major error in the discriminant.", Severity: types.SeverityHigh},
		{Text: "A minor rounding error.", Severity: types.SeverityLow},
	})
	output := buf.String()

	assert.Contains(t, output, "MISCONCEPTIONS: cy")
	assert.Contains(t, output, "1. [HIGH] There was a major error")
	assert.Contains(t, output, "2. [LOW] A minor rounding error.")
}

func TestPrintMastery(t *testing.T) {
	next := types.LevelB
	tests := []struct {
		name   string
		status types.MasteryStatus
		want   string
	}{
		{"advance", types.MasteryStatus{Current: types.LevelC, Next: &next, LatestScore: 100, CanAdvance: true}, "Advance:  yes, to B"},
		{"hold", types.MasteryStatus{Current: types.LevelC, Next: &next, LatestScore: 99}, "Advance:  no"},
		{"enrichment", types.MasteryStatus{Current: types.LevelA, LatestScore: 97, CanAdvance: true, Enrichment: true}, "Advance:  enrichment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).PrintMastery("", &tt.status)
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintMastery("x", nil)
	assert.Empty(t, buf.String())
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.New()
	NewPrinter(&buf).PrintReport(&types.DiagnosticReport{
		ID:       id,
		ClassID:  "alg-1",
		Subject:  "algebra1",
		Budget:   5,
		Groups:   sampleGroups(),
		Students: []types.StudentDiagnostic{{StudentID: "a"}, {StudentID: "b"}},
		Excluded: []string{"b"},
	})
	output := buf.String()

	assert.Contains(t, output, id.String())
	assert.Contains(t, output, "Students: 2 (1 without scored work)")
	assert.Contains(t, output, "PERFORMANCE BANDS")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate(strings.Repeat("é", 20), 10)
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)
}
