package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

func sampleRoster() types.ClassRoster {
	ts := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)
	return types.ClassRoster{
		ClassID: "period-3",
		Subject: "algebra1",
		Students: []types.StudentRecords{
			{
				ID:   "ana",
				Name: "Ana",
				Records: []types.ScoreRecord{
					types.NewScoreRecord("Slope", "F-IF.B.6", 92, "", ts),
					types.NewScoreRecord("Linear Equations", "A-CED.A.1", 88, "", ts),
				},
			},
			{
				ID:   "cy",
				Name: "Cy",
				Records: []types.ScoreRecord{
					types.NewScoreRecord("Slope", "F-IF.B.6", 20, "The student made a major error computing rise over run.", ts),
					types.NewScoreRecord("Linear Equations", "A-CED.A.1", 45, "Forgot to isolate the variable before dividing.", ts.Add(time.Hour)),
				},
			},
			{ID: "ben", Name: "Ben"},
		},
	}
}

func TestReportCommand(t *testing.T) {
	in := writeFixture(t, "roster.json", sampleRoster())
	out := filepath.Join(t.TempDir(), "out", "report.json")

	stdout, stderr, err := execute(t, "report", "--in", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Successfully wrote report")
	assert.NotContains(t, stderr, "Warning")

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	var r types.DiagnosticReport
	require.NoError(t, json.Unmarshal(content, &r))

	assert.Equal(t, "period-3", r.ClassID)
	assert.Equal(t, "algebra1", r.Subject)
	assert.Equal(t, 5, r.Budget)
	assert.Equal(t, []string{"ben"}, r.Excluded)
	require.Len(t, r.Students, 3)
	require.Len(t, r.Groups, 4)

	for _, rec := range r.Recommendations {
		assert.LessOrEqual(t, rec.TotalUnits(), r.Budget)
	}
	assert.Equal(t, types.BandAdvanced, r.Students[0].Band)
	assert.Equal(t, types.BandNeedsSupport, r.Students[1].Band)
	assert.NotEmpty(t, r.Students[1].Misconceptions)
}

func TestReportCommand_BudgetOverride(t *testing.T) {
	in := writeFixture(t, "roster.json", sampleRoster())

	stdout, _, err := execute(t, "report", "--in", in, "--budget", "2")
	require.NoError(t, err)

	var r types.DiagnosticReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &r))
	assert.Equal(t, 2, r.Budget)
	for _, rec := range r.Recommendations {
		assert.LessOrEqual(t, rec.TotalUnits(), 2)
	}
}

func TestReportCommand_ConfigFile(t *testing.T) {
	in := writeFixture(t, "roster.json", sampleRoster())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("budget: 3\nworkers: 1\n"), 0644))

	stdout, _, err := execute(t, "--config", cfgPath, "report", "--in", in)
	require.NoError(t, err)

	var r types.DiagnosticReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &r))
	assert.Equal(t, 3, r.Budget)
}

func TestReportCommand_Errors(t *testing.T) {
	noDatabase(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no roster", args: []string{"report"}, wantErr: "one of --in or --class-id is required"},
		{name: "class without database", args: []string{"report", "--class-id", "period-3"}, wantErr: "database URL is required"},
		{name: "bad config", args: []string{"--config", filepath.Join(t.TempDir(), "missing.json"), "report"}, wantErr: "failed to load config"},
		{name: "invalid roster", args: []string{"report", "--in", writeFixture(t, "bad.json", types.ClassRoster{})}, wantErr: "invalid roster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGroupStudentsCommand(t *testing.T) {
	in := writeFixture(t, "roster.json", sampleRoster())

	stdout, stderr, err := execute(t, "--verbose", "group-students", "--in", in)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Needs Support")

	var groups []types.BandGroup
	require.NoError(t, json.Unmarshal([]byte(stdout), &groups))
	require.Len(t, groups, 4)
	assert.Equal(t, types.BandAdvanced, groups[0].Band.ID)
	assert.Len(t, groups[0].Members, 1)
	assert.Len(t, groups[3].Members, 1)
	assert.NotEmpty(t, groups[3].WeakTopics)
}
