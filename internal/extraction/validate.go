package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spigell/resume-extractor/internal/candidate"
)

const schemaResource = "candidate.json"

// outputValidator checks a parsed completion against the field schema.
// A mismatch is only reported; reconciliation copes with any shape.
type outputValidator struct {
	schema *jsonschema.Schema
}

func newOutputValidator(schema candidate.Schema) (*outputValidator, error) {
	b, err := json.Marshal(schema.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}

	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &outputValidator{schema: compiled}, nil
}

func (v *outputValidator) Validate(data map[string]any) error {
	if v == nil || v.schema == nil {
		return nil
	}
	if err := v.schema.Validate(data); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}
	return nil
}

