package llm

import (
	"fmt"
	"strings"
)

// OutputSchema describes the JSON shape a prompt asks the model to return.
type OutputSchema struct {
	Name        string
	Description string
	Array       bool
	Fields      []SchemaField
}

// SchemaField defines a single field in the output.
type SchemaField struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// BuildJSONPrompt appends the output contract and the input block to the
// schema's task description.
func BuildJSONPrompt(schema OutputSchema, input string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	if schema.Array {
		sb.WriteString("Return ONLY a valid JSON array whose items have this exact structure:\n{\n")
	} else {
		sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	}
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("Return ONLY the JSON, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input:\n\"\"\"\n")
	sb.WriteString(input)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}
