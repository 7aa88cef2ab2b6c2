package misconceptions

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

const sampleJustification = "The student set up the equation correctly. " +
	"However, there was a major error in distributing the negative sign. " +
	"Also, a minor rounding error in the final answer! " +
	"The student forgot to include units. Overall good work."

func TestExtract_RanksBySeverity(t *testing.T) {
	got := Extract(sampleJustification)

	want := []types.Misconception{
		{Text: "There was a major error in distributing the negative sign.", Severity: types.SeverityHigh},
		{Text: "The student forgot to include units.", Severity: types.SeverityMedium},
		{Text: "A minor rounding error in the final answer.", Severity: types.SeverityLow},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	first := Extract(sampleJustification)
	second := Extract(sampleJustification)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Extract() not idempotent (-first +second):\n%s", diff)
	}
}

func TestExtract_EmptyAndNoIssues(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("   "))
	assert.Empty(t, Extract("Excellent work. Every step was shown clearly and neatly."))
	assert.NotNil(t, Extract("Short. Ok."))
}

func TestExtract_DropsShortSentences(t *testing.T) {
	// "Wrong" is an issue word but the sentence is under ten characters.
	assert.Empty(t, Extract("Wrong! All else fine here."))
}

func TestExtract_DeduplicatesByPrefix(t *testing.T) {
	text := "The student forgot to include the units in part a. " +
		"The student forgot to include the units in part b."

	got := Extract(text)
	require.Len(t, got, 1)
	assert.Equal(t, "The student forgot to include the units in part a.", got[0].Text)
}

func TestExtract_BulletLinesAddMissingIssues(t *testing.T) {
	text := "Good effort overall.\n- Sign flipped at x = 1.5: wrong\n"

	got := Extract(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Sign flipped at x = 1.5: wrong.", got[0].Text)
	assert.Equal(t, types.SeverityMedium, got[0].Severity)
}

func TestExtract_BulletOverlappingSentenceIsSkipped(t *testing.T) {
	text := "Good effort.\n- Missing the negative sign when distributing\n"

	got := Extract(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Missing the negative sign when distributing.", got[0].Text)
}

func TestBulletIssues_RequiresSpaceAfterMarker(t *testing.T) {
	text := "-5 points deducted for the missing units\n- Forgot to carry the negative sign throughout\n"

	got := bulletIssues(text)
	assert.Equal(t, []string{"Forgot to carry the negative sign throughout"}, got)
}

func TestExtract_PointDeductionIsNotABullet(t *testing.T) {
	got := Extract("-5 points deducted for the missing units")
	require.Len(t, got, 1)
	assert.Equal(t, "-5 points deducted for the missing units.", got[0].Text)
	assert.Equal(t, "Forgot the units.", normalizeStatement("- forgot the units"))
}

func TestExtract_CapsAtMaxEntries(t *testing.T) {
	subjects := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet"}
	var sb strings.Builder
	for i, s := range subjects {
		if i%3 == 0 {
			sb.WriteString(fmt.Sprintf("Part %s had a minor error in the arithmetic. ", s))
		} else {
			sb.WriteString(fmt.Sprintf("Part %s was answered incorrectly by the student. ", s))
		}
	}

	got := Extract(sb.String())
	require.Len(t, got, MaxEntries)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Severity.Rank(), got[i].Severity.Rank(), "entries must be ordered by severity")
	}
	assert.Equal(t, types.SeverityMedium, got[0].Severity)
}

func TestExtract_NormalizesStatements(t *testing.T) {
	got := Extract("additionally, **forgot** to check the solution in the original equation")
	require.Len(t, got, 1)
	assert.Equal(t, "Forgot to check the solution in the original equation.", got[0].Text)
}

func TestClassify_PriorityCascade(t *testing.T) {
	tests := []struct {
		sentence string
		want     types.Severity
	}{
		{"There was a major error in step two", types.SeverityHigh},
		{"The answer is completely wrong", types.SeverityHigh},
		{"Shows a fundamental misunderstanding of slope", types.SeverityHigh},
		{"The student did not understand the question", types.SeverityHigh},
		{"No credit was given for this part", types.SeverityHigh},
		{"A slight error when copying the problem", types.SeverityLow},
		// Only "error" and "wrong" qualify for the graded keyword sets.
		{"A slight mistake when copying the problem", types.SeverityMedium},
		{"A major mistake in the setup", types.SeverityMedium},
		{"The final answer is totally incorrect", types.SeverityMedium},
		{"Notation error in the final line", types.SeverityLow},
		{"The student could have simplified further", types.SeverityLow},
		{"The answer was nearly correct", types.SeverityLow},
		{"The student forgot the negative sign", types.SeverityMedium},
		// Matches both HIGH and LOW keyword sets; HIGH is checked first.
		{"A major error that could have been avoided", types.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sentence))
		})
	}
}

func TestDedupe_FirstSeenWins(t *testing.T) {
	in := []types.Misconception{
		{Text: "Confused the radius with the diameter in part one.", Severity: types.SeverityLow},
		{Text: "Confused the radius with the diameter in part two.", Severity: types.SeverityHigh},
		{Text: "Lost track of the negative exponent.", Severity: types.SeverityMedium},
	}

	got := Dedupe(in)
	require.Len(t, got, 2)
	assert.Equal(t, types.SeverityLow, got[0].Severity)
}

func TestMerge_DedupesAcrossLists(t *testing.T) {
	a := Extract("The student forgot to include units in the answer.")
	b := Extract("The student forgot to include units in the answer again. There was a major error in the setup.")

	got := Merge(a, b)
	assert.Equal(t, []string{
		"There was a major error in the setup.",
		"The student forgot to include units in the answer.",
	}, Texts(got))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, overlaps("Forgot units", "forgot units in the final answer"))
	assert.False(t, overlaps("Forgot units in part a of the question", "Missing sign in part b"))
}
