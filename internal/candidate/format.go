package candidate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format renders the record as "Label: value" lines in schema order.
func Format(schema Schema, record Record) string {
	lines := make([]string, 0, len(schema))
	for _, spec := range schema {
		lines = append(lines, fmt.Sprintf("%s: %s", spec.Label, record.Get(spec.Name)))
	}
	return strings.Join(lines, "\n")
}

// MarshalRecord renders the record as an indented JSON object with keys in schema order.
func MarshalRecord(schema Schema, record Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, spec := range schema {
		key, err := json.Marshal(string(spec.Name))
		if err != nil {
			return nil, fmt.Errorf("marshal key %s: %w", spec.Name, err)
		}
		value, err := json.Marshal(record.Get(spec.Name))
		if err != nil {
			return nil, fmt.Errorf("marshal value of %s: %w", spec.Name, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(schema)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

// MarshalRecordYAML renders the record as a YAML mapping with keys in schema order.
func MarshalRecordYAML(schema Schema, record Record) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, spec := range schema {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(spec.Name)},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: record.Get(spec.Name)},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	return buf.Bytes(), nil
}
