package types

// CurriculumEntry maps a standard code and keyword set to a canonical topic name.
type CurriculumEntry struct {
	StandardCode  string   `json:"standard_code" yaml:"standard_code" validate:"required"`
	CanonicalName string   `json:"canonical_name" yaml:"canonical_name" validate:"required"`
	Keywords      []string `json:"keywords" yaml:"keywords"`
}

// Topic identifies a topic the grouper aggregates over.
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
