package extraction

import (
	"bytes"
	"encoding/json"
	"strings"

	_ "embed"

	"github.com/spigell/resume-extractor/internal/candidate"
)

// DefaultMaxTextChars is how much of the document text reaches the model.
const DefaultMaxTextChars = 2000

//go:embed prompt.md
var promptTemplate string

// BuildPrompt renders the extraction prompt from the schema and the first maxChars
// characters of the document text. A non-positive maxChars means DefaultMaxTextChars.
func BuildPrompt(text string, schema candidate.Schema, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxTextChars
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Fields:\n{{SCHEMA_JSON}}\n\nText:\n{{DOCUMENT_TEXT}}\n\nJSON Response:"
	}

	replacer := strings.NewReplacer(
		"{{SCHEMA_JSON}}", schemaJSON(schema),
		"{{DOCUMENT_TEXT}}", truncateRunes(text, maxChars),
	)
	return strings.TrimSpace(replacer.Replace(template))
}

// schemaJSON serializes the schema fields in order, one key per field.
func schemaJSON(schema candidate.Schema) string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, spec := range schema {
		key, _ := json.Marshal(string(spec.Name))
		value, _ := json.Marshal(map[string]string{
			"description": spec.Description,
			"type":        "string",
		})
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	buf.WriteString("\n}")
	return buf.String()
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
