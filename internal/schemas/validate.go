// Package schemas provides JSON Schema validation for the engine's structured artifacts.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/diagnostic-engine/schemas"
)

// Name identifies an embedded schema document.
type Name string

// Embedded schemas.
const (
	ClassRoster       Name = "class_roster"
	CurriculumCatalog Name = "curriculum_catalog"
	Misconceptions    Name = "misconceptions"
	Recommendations   Name = "recommendations"
	DiagnosticReport  Name = "diagnostic_report"
	Questions         Name = "questions"
)

func (n Name) fileName() string {
	return string(n) + ".schema.json"
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema Name
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Schema))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Schema  Name
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Source returns the raw schema document.
func Source(name Name) ([]byte, error) {
	data, err := schemafiles.FS.ReadFile(name.fileName())
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Message: "schema not embedded", Cause: err}
	}
	return data, nil
}

// ValidateDocument validates raw JSON against an embedded schema.
func ValidateDocument(name Name, document []byte) error {
	schemaData, err := Source(name)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return &SchemaLoadError{
			Schema:  name,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidateValue marshals v to JSON and validates it against an embedded schema.
func ValidateValue(name Name, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s validation: %w", name, err)
	}
	return ValidateDocument(name, data)
}

// ValidateFile validates a JSON file on disk against an embedded schema.
func ValidateFile(name Name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ValidateDocument(name, data)
}
