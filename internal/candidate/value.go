package candidate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Kind tells which shape a model value had.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNested:
		return "nested"
	default:
		return "absent"
	}
}

// missingMarkers are the values models use instead of leaving a field out.
var missingMarkers = map[string]struct{}{
	NA:     {},
	"None": {},
	"null": {},
}

// Value is a single field of the model response: absent, a plain value or
// an object carrying the real value under the "value" key.
type Value struct {
	kind Kind
	text string
}

type nestedValue struct {
	Value any `mapstructure:"value"`
}

// NewValue classifies a raw decoded JSON value.
func NewValue(raw any) Value {
	switch val := raw.(type) {
	case nil:
		return Value{kind: KindAbsent}
	case map[string]any:
		var nested nestedValue
		if err := mapstructure.Decode(val, &nested); err != nil {
			return Value{kind: KindNested}
		}
		return Value{kind: KindNested, text: coerceString(nested.Value)}
	default:
		return Value{kind: KindText, text: coerceString(val)}
	}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// Text returns the unwrapped, trimmed value.
func (v Value) Text() string { return strings.TrimSpace(v.text) }

// Missing reports whether the model did not provide a usable value.
func (v Value) Missing() bool {
	text := v.Text()
	if text == "" {
		return true
	}
	_, ok := missingMarkers[text]
	return ok
}

// Fields holds the parsed model response keyed by field.
type Fields map[Field]Value

// FieldsFromMap converts a decoded JSON object into Fields. Keys that are not
// part of any schema are kept; the reconciler only looks at schema fields.
func FieldsFromMap(data map[string]any) Fields {
	fields := make(Fields, len(data))
	for key, raw := range data {
		fields[Field(key)] = NewValue(raw)
	}
	return fields
}

// Get returns the value for the field or an absent value.
func (f Fields) Get(field Field) Value {
	if f == nil {
		return Value{}
	}
	return f[field]
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
