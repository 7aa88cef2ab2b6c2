package topics

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/diagnostic-engine/internal/catalog"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

func newTestResolver() *Resolver {
	return NewResolver(catalog.Default())
}

func TestResolve_ExactNameBonus(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve("Quadratic Formula", "", "algebra1")
	assert.Equal(t, "Quadratic Formula", res.Name)
	assert.Equal(t, StepKeyword, res.Step)
	assert.GreaterOrEqual(t, res.Score, exactNameBonus)
	assert.Equal(t, "A-REI.B.4", res.StandardCode)
}

func TestResolve_StandardCode(t *testing.T) {
	r := newTestResolver()

	t.Run("in scope", func(t *testing.T) {
		res := r.Resolve("some worksheet", "G.GMD.B.4", "geometry")
		assert.Equal(t, "Cross Sections of Solids", res.Name)
		assert.Equal(t, StepStandardCode, res.Step)
	})

	t.Run("retries pooled scope", func(t *testing.T) {
		res := r.Resolve("some worksheet", "A-REI.B.4", "geometry")
		assert.Equal(t, "Quadratic Formula", res.Name)
		assert.Equal(t, StepStandardCode, res.Step)
	})

	t.Run("code found in raw text when label empty", func(t *testing.T) {
		res := r.Resolve("Practice on 7.G.B.6 prisms", "", "grade7")
		assert.Equal(t, "Area and Volume Problems", res.Name)
		assert.Equal(t, "7.G.B.6", res.StandardCode)
	})

	t.Run("hs prefixed label", func(t *testing.T) {
		res := r.Resolve("Solving by a formula", "HSA-REI.B.4", "algebra1")
		assert.Equal(t, "Quadratic Formula", res.Name)
		assert.Equal(t, StepStandardCode, res.Step)
		assert.Equal(t, "A-REI.B.4", res.StandardCode)
	})

	t.Run("ccss qualified label", func(t *testing.T) {
		res := r.Resolve("", "CCSS.MATH.CONTENT.7.RP.A.2", "grade7")
		assert.Equal(t, "Proportional Relationships", res.Name)
	})
}

func TestResolve_KeywordScoring(t *testing.T) {
	r := newTestResolver()

	t.Run("single keyword above threshold", func(t *testing.T) {
		res := r.Resolve("The student struggled with finding the slope of the line", "", "algebra1")
		assert.Equal(t, "Slope and Rate of Change", res.Name)
		assert.Equal(t, StepKeyword, res.Step)
	})

	t.Run("longer keyword dominates", func(t *testing.T) {
		res := r.Resolve("volume of a cone cross section", "", "geometry")
		assert.Equal(t, "Cross Sections of Solids", res.Name)
	})
}

func TestResolve_CleanLabelPassthrough(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve("  Graphing stuff ", "", "algebra1")
	assert.Equal(t, "Graphing stuff", res.Name)
	assert.Equal(t, StepCleanLabel, res.Step)
}

func TestResolve_BoldSpan(t *testing.T) {
	r := newTestResolver()

	res := r.Resolve("Based on the rubric, **Piecewise Functions** were attempted but never finished correctly.", "", "algebra1")
	assert.Equal(t, "Piecewise Functions", res.Name)
	assert.Equal(t, StepBoldSpan, res.Step)
}

func TestResolve_Fallback(t *testing.T) {
	r := newTestResolver()

	t.Run("rejected bold spans are truncated", func(t *testing.T) {
		res := r.Resolve("The student wrote **the answer is wrong** and cited **X.YZ.A.9** for this problem.", "", "geometry")
		assert.Equal(t, StepFallback, res.Step)
		assert.Equal(t, "wrote the answer is wrong and ci...", res.Name)
		assert.Equal(t, "X.YZ.A.9", res.StandardCode)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, DefaultTopic, r.ResolveTopicName("", "", "algebra1"))
	})

	t.Run("markup only", func(t *testing.T) {
		assert.Equal(t, DefaultTopic, r.ResolveTopicName("**  **", "", "algebra1"))
	})
}

func TestResolve_EmptySubjectUsesPooledScope(t *testing.T) {
	r := newTestResolver()
	assert.Equal(t, "Triangle Congruence", r.ResolveTopicName("", "G.CO.B.7", ""))
}

func TestResolve_TieKeepsFirstEntry(t *testing.T) {
	c := catalog.New(map[string][]types.CurriculumEntry{
		"s": {
			{StandardCode: "A.AA.A.1", CanonicalName: "First", Keywords: []string{"shared"}},
			{StandardCode: "A.AA.A.2", CanonicalName: "Second", Keywords: []string{"shared"}},
		},
	})
	r := NewResolver(c)
	assert.Equal(t, "First", r.ResolveTopicName("a shared idea in a long description", "", "s"))
}

func TestResolve_ConcurrentUse(t *testing.T) {
	r := newTestResolver()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.ResolveTopicName(fmt.Sprintf("Quadratic Formula %d", i), "", "algebra1")
		}(i)
	}
	wg.Wait()

	for _, name := range results {
		assert.Equal(t, "Quadratic Formula", name)
	}
}
