// Package topics maps noisy topic text onto canonical curriculum topic names.
package topics

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/diagnostic-engine/internal/catalog"
	"github.com/jonathan/diagnostic-engine/internal/standards"
)

const (
	// exactNameBonus is added when an entry's full canonical name appears in the text.
	exactNameBonus = 100
	// minKeywordScore is the lowest keyword score accepted as a match.
	minKeywordScore = 5
	// maxCleanLabelLen is the longest raw text returned unchanged.
	maxCleanLabelLen = 40
	// minBoldLen and maxBoldLen bound an accepted **bold** span.
	minBoldLen = 3
	maxBoldLen = 40
	// maxFallbackLen is where fallback labels are truncated.
	maxFallbackLen = 32
	// DefaultTopic is returned when nothing usable is left of the input.
	DefaultTopic = "Topic"
)

// Step records which resolution rule produced a name.
type Step string

// Resolution steps in the order they are tried.
const (
	StepStandardCode Step = "standard_code"
	StepKeyword      Step = "keyword"
	StepCleanLabel   Step = "clean_label"
	StepBoldSpan     Step = "bold_span"
	StepFallback     Step = "fallback"
)

var (
	boldSpanRe      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	leadingFillerRe = regexp.MustCompile(`(?i)^\s*(the student|based on|this)\b[\s,:]*`)
)

// Resolution is the outcome of resolving one topic label.
type Resolution struct {
	Name         string `json:"name"`
	StandardCode string `json:"standard_code,omitempty"`
	Step         Step   `json:"step"`
	Score        int    `json:"score,omitempty"`
}

// Resolver resolves topic text against a read-only catalog. It holds no
// mutable state and may be shared across goroutines.
type Resolver struct {
	catalog *catalog.Catalog
}

// NewResolver creates a Resolver over the given catalog.
func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// ResolveTopicName returns a display-ready topic name. It always returns a
// non-empty string.
func (r *Resolver) ResolveTopicName(rawText, standardLabel, subject string) string {
	return r.Resolve(rawText, standardLabel, subject).Name
}

// Resolve runs the resolution steps in order and reports which one won.
func (r *Resolver) Resolve(rawText, standardLabel, subject string) Resolution {
	scope := strings.ToLower(strings.TrimSpace(subject))
	if scope == "" {
		scope = catalog.ScopeAll
	}

	// A code-shaped match is kept for display even when the catalog lacks it.
	shapedCode, _ := standards.MatchPattern(pick(standardLabel, rawText))

	if res, ok := r.byStandardCode(rawText, standardLabel, scope); ok {
		return res
	}

	if res, ok := r.byKeywords(rawText, scope); ok {
		return res
	}

	trimmed := strings.TrimSpace(rawText)
	if trimmed != "" && len(trimmed) <= maxCleanLabelLen && !looksLikeSentence(trimmed) {
		return Resolution{Name: trimmed, StandardCode: shapedCode, Step: StepCleanLabel}
	}

	if span, ok := boldSpan(rawText); ok {
		return Resolution{Name: span, StandardCode: shapedCode, Step: StepBoldSpan}
	}

	return Resolution{Name: fallbackLabel(rawText), StandardCode: shapedCode, Step: StepFallback}
}

func (r *Resolver) byStandardCode(rawText, standardLabel, scope string) (Resolution, bool) {
	code, ok := standards.ExtractFromLabels(standardLabel, rawText)
	if !ok {
		return Resolution{}, false
	}

	entry, found := r.catalog.LookupCode(scope, code)
	if !found && scope != catalog.ScopeAll {
		entry, found = r.catalog.LookupCode(catalog.ScopeAll, code)
	}
	if !found {
		return Resolution{}, false
	}
	return Resolution{Name: entry.CanonicalName, StandardCode: entry.StandardCode, Step: StepStandardCode}, true
}

// byKeywords scores every entry in scope. Longer keywords contribute more,
// so specific multi-word terms beat short generic ones. Ties keep the
// earlier entry.
func (r *Resolver) byKeywords(rawText, scope string) (Resolution, bool) {
	lower := strings.ToLower(rawText)
	if strings.TrimSpace(lower) == "" {
		return Resolution{}, false
	}

	bestScore := 0
	bestIdx := -1
	entries := r.catalog.Entries(scope)
	for i, entry := range entries {
		score := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				score += len(kw)
			}
		}
		if name := strings.ToLower(entry.CanonicalName); name != "" && strings.Contains(lower, name) {
			score += exactNameBonus
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < minKeywordScore {
		return Resolution{}, false
	}
	best := entries[bestIdx]
	return Resolution{Name: best.CanonicalName, StandardCode: best.StandardCode, Step: StepKeyword, Score: bestScore}, true
}

func looksLikeSentence(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(text, "**") ||
		strings.Contains(lower, "the student") ||
		strings.Contains(lower, "based on")
}

// boldSpan returns the first **bold** span that reads like a topic label.
func boldSpan(text string) (string, bool) {
	for _, m := range boldSpanRe.FindAllStringSubmatch(text, -1) {
		span := strings.TrimSpace(m[1])
		n := utf8.RuneCountInString(span)
		if n < minBoldLen || n > maxBoldLen {
			continue
		}
		if _, isCode := standards.MatchPattern(span); isCode {
			continue
		}
		lower := strings.ToLower(span)
		if strings.Contains(lower, " is ") || strings.Contains(lower, " the ") {
			continue
		}
		return span, true
	}
	return "", false
}

// fallbackLabel is lossy: it keeps whatever is left after stripping markup
// and a leading filler phrase.
func fallbackLabel(text string) string {
	cleaned := strings.ReplaceAll(text, "**", "")
	cleaned = leadingFillerRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if utf8.RuneCountInString(cleaned) > maxFallbackLen {
		runes := []rune(cleaned)
		cleaned = strings.TrimSpace(string(runes[:maxFallbackLen])) + "..."
	}
	if cleaned == "" {
		return DefaultTopic
	}
	return cleaned
}

func pick(preferred, fallback string) string {
	if strings.TrimSpace(preferred) != "" {
		return preferred
	}
	return fallback
}
