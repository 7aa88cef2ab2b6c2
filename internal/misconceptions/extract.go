// Package misconceptions mines free-text grade justifications for ranked
// misconception statements. Classification is lexical and deterministic.
package misconceptions

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

const (
	// MaxEntries caps the number of statements returned per text.
	MaxEntries = 8
	// minSentenceLen drops fragments shorter than this after trimming.
	minSentenceLen = 10
	// overlapPrefixLen is the prefix length compared when deduplicating.
	overlapPrefixLen = 30
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]`)
	issueRe         = regexp.MustCompile(`(?i)(error|mistake|incorrect|wrong|missing|forgot|failed|did not|didn't|omitted|lost|deducted|issue|problem|misconception|confused|misunderstand)`)
	bulletLineRe    = regexp.MustCompile(`^\s*[-•*]\s+(.{15,})$`)
)

// Extract returns at most MaxEntries misconception statements found in a
// justification, most severe first. Each call is independent: identical
// input always yields identical output.
func Extract(text string) []types.Misconception {
	if strings.TrimSpace(text) == "" {
		return []types.Misconception{}
	}

	var entries []types.Misconception
	for _, sentence := range sentenceSplitRe.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < minSentenceLen || !issueRe.MatchString(sentence) {
			continue
		}
		normalized := normalizeStatement(sentence)
		if normalized == "" {
			continue
		}
		entries = append(entries, types.Misconception{
			Text:     normalized,
			Severity: Classify(sentence),
		})
	}

	for _, line := range bulletIssues(text) {
		normalized := normalizeStatement(line)
		if normalized == "" || overlapsAny(normalized, entries) {
			continue
		}
		entries = append(entries, types.Misconception{
			Text:     normalized,
			Severity: Classify(line),
		})
	}

	return rank(Dedupe(entries))
}

// bulletIssues returns bullet-point lines that mention an issue.
func bulletIssues(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		m := bulletLineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil || !issueRe.MatchString(m[1]) {
			continue
		}
		lines = append(lines, m[1])
	}
	return lines
}

// Dedupe drops entries that overlap an earlier one; the first seen wins.
func Dedupe(entries []types.Misconception) []types.Misconception {
	kept := make([]types.Misconception, 0, len(entries))
	for _, e := range entries {
		if overlapsAny(e.Text, kept) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// Merge combines several ranked lists into one, applying the same overlap
// rule across lists and the same severity ordering and cap.
func Merge(lists ...[]types.Misconception) []types.Misconception {
	var all []types.Misconception
	for _, l := range lists {
		all = append(all, l...)
	}
	return rank(Dedupe(all))
}

// Texts returns just the statement strings, in order.
func Texts(entries []types.Misconception) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func overlapsAny(text string, entries []types.Misconception) bool {
	for _, e := range entries {
		if overlaps(text, e.Text) {
			return true
		}
	}
	return false
}

// rank orders by severity, keeping input order within a severity, and
// truncates to MaxEntries.
func rank(entries []types.Misconception) []types.Misconception {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Severity.Rank() < entries[j].Severity.Rank()
	})
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}
