package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssessmentCommand_FlagsValidation(t *testing.T) {
	noDatabase(t)
	in := writeFixture(t, "report.json", sampleReport())

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing band", args: []string{"create-assessment", "--in", in}, wantErr: "required"},
		{name: "band without recommendations", args: []string{"create-assessment", "--in", in, "--band", "developing"}, wantErr: "has no recommendations"},
		{name: "no database", args: []string{"create-assessment", "--in", in, "--band", "needs-support"}, wantErr: "database URL is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSeedCommand_RequiresDatabase(t *testing.T) {
	noDatabase(t)

	_, _, err := execute(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}

func TestGenerateQuestionsCommand_SaveRequiresDatabase(t *testing.T) {
	noDatabase(t)
	useClient(t, &stubClient{reply: `[{"prompt": "Q1"}]`}, nil)
	in := writeFixture(t, "report.json", sampleReport())

	_, _, err := execute(t, "generate-questions", "--in", in, "--api-key", "k", "--save")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL is required")
}
