// Package catalog loads the subject-scoped curriculum catalog used for topic resolution.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/diagnostic-engine/internal/schemas"
	"github.com/jonathan/diagnostic-engine/internal/types"
)

// ScopeAll is the pooled scope holding every subject's entries.
const ScopeAll = "all"

// minKeywordLen is the shortest keyword kept after normalisation.
const minKeywordLen = 3

//go:embed default_catalog.json
var defaultCatalogJSON []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// File is the on-disk catalog document.
type File struct {
	Subjects map[string][]types.CurriculumEntry `json:"subjects" yaml:"subjects"`
}

// Catalog is read-only reference data keyed by subject, plus the pooled
// "all" scope. It is safe for concurrent use once built.
type Catalog struct {
	subjects map[string][]types.CurriculumEntry
	names    []string
	pooled   []types.CurriculumEntry
}

// New builds a Catalog from subject-grouped entries. Keywords are
// normalised and the pooled scope is assembled in subject-name order so
// that lookups are deterministic.
func New(subjects map[string][]types.CurriculumEntry) *Catalog {
	c := &Catalog{subjects: make(map[string][]types.CurriculumEntry, len(subjects))}

	for name, entries := range subjects {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || key == ScopeAll {
			continue
		}
		normalized := make([]types.CurriculumEntry, 0, len(entries))
		for _, e := range entries {
			normalized = append(normalized, types.CurriculumEntry{
				StandardCode:  strings.ToUpper(strings.TrimSpace(e.StandardCode)),
				CanonicalName: strings.TrimSpace(e.CanonicalName),
				Keywords:      NormalizeKeywords(e.Keywords),
			})
		}
		c.subjects[key] = append(c.subjects[key], normalized...)
	}

	for name := range c.subjects {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)

	for _, name := range c.names {
		c.pooled = append(c.pooled, c.subjects[name]...)
	}
	return c
}

// Parse decodes and schema-validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	if err := schemas.ValidateDocument(schemas.CurriculumCatalog, data); err != nil {
		return nil, &LoadError{Message: "catalog does not match schema", Cause: err}
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}
	return New(f.Subjects), nil
}

// Load reads a catalog from a JSON or YAML (.yaml, .yml) file.
func Load(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(content)
	default:
		return Parse(content)
	}
}

// ParseYAML decodes a YAML catalog and validates it like a JSON one.
func ParseYAML(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal YAML", Cause: err}
	}
	asJSON, err := json.Marshal(f)
	if err != nil {
		return nil, &LoadError{Message: "failed to re-encode YAML catalog", Cause: err}
	}
	return Parse(asJSON)
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Subjects lists the subject scopes in sorted order, excluding "all".
func (c *Catalog) Subjects() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// BySubject returns a copy of the entries keyed by subject.
func (c *Catalog) BySubject() map[string][]types.CurriculumEntry {
	out := make(map[string][]types.CurriculumEntry, len(c.subjects))
	for name, entries := range c.subjects {
		out[name] = append([]types.CurriculumEntry(nil), entries...)
	}
	return out
}

// HasScope reports whether scope names a subject or the pooled scope.
func (c *Catalog) HasScope(scope string) bool {
	key := strings.ToLower(strings.TrimSpace(scope))
	if key == ScopeAll {
		return true
	}
	_, ok := c.subjects[key]
	return ok
}

// Entries returns the entries for a scope. Unknown scopes get the pooled set.
// The returned slice must not be modified.
func (c *Catalog) Entries(scope string) []types.CurriculumEntry {
	key := strings.ToLower(strings.TrimSpace(scope))
	if entries, ok := c.subjects[key]; ok {
		return entries
	}
	return c.pooled
}

// LookupCode finds the entry with the given standard code within a scope.
func (c *Catalog) LookupCode(scope, code string) (types.CurriculumEntry, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return types.CurriculumEntry{}, false
	}
	for _, e := range c.Entries(scope) {
		if e.StandardCode == code {
			return e, true
		}
	}
	return types.CurriculumEntry{}, false
}

// Topics returns the distinct canonical topics of a scope in catalog order.
// A topic's ID is its canonical name, which is what topic resolution yields.
func (c *Catalog) Topics(scope string) []types.Topic {
	entries := c.Entries(scope)
	seen := make(map[string]bool, len(entries))
	topics := make([]types.Topic, 0, len(entries))
	for _, e := range entries {
		if seen[e.CanonicalName] {
			continue
		}
		seen[e.CanonicalName] = true
		topics = append(topics, types.Topic{ID: e.CanonicalName, Name: e.CanonicalName})
	}
	return topics
}

// NormalizeKeywords lower-cases and trims keywords, dropping short and
// duplicate ones while preserving order.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if len(k) < minKeywordLen || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
