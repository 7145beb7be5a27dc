package candidate

// Field is a key of the candidate profile. The same keys are used in the prompt,
// in the model response and in the final record.
type Field string

const (
	FieldName            Field = "name"
	FieldMobileNumber    Field = "mobile_number"
	FieldAddress         Field = "address"
	FieldEmail           Field = "email"
	FieldLinkedIn        Field = "linkedin"
	FieldGitHub          Field = "github"
	FieldExperienceYears Field = "experience_years"
)

// NA marks a field that could not be resolved.
const NA = "NA"

// FieldSpec describes a single schema field.
type FieldSpec struct {
	Name        Field
	Label       string
	Description string
}

// Schema is an ordered list of fields. The order is used for prompting and formatting.
type Schema []FieldSpec

// DefaultSchema returns the candidate profile schema.
func DefaultSchema() Schema {
	return Schema{
		{Name: FieldName, Label: "Name", Description: "Full name of the candidate"},
		{Name: FieldMobileNumber, Label: "Mobile Number", Description: "Mobile or phone number of the candidate"},
		{Name: FieldAddress, Label: "Address", Description: "Postal address or location of the candidate"},
		{Name: FieldEmail, Label: "Email", Description: "Contact email address"},
		{Name: FieldLinkedIn, Label: "Linkedin", Description: "LinkedIn profile URL only"},
		{Name: FieldGitHub, Label: "Github", Description: "GitHub profile URL only"},
		{Name: FieldExperienceYears, Label: "Experience Years", Description: "Total years of professional experience"},
	}
}

// Fields returns the field names in schema order.
func (s Schema) Fields() []Field {
	fields := make([]Field, 0, len(s))
	for _, spec := range s {
		fields = append(fields, spec.Name)
	}
	return fields
}

// Lookup returns the spec of the given field.
func (s Schema) Lookup(field Field) (FieldSpec, bool) {
	for _, spec := range s {
		if spec.Name == field {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// JSONSchema returns a JSON Schema document that describes the expected model output.
func (s Schema) JSONSchema() map[string]any {
	properties := make(map[string]any, len(s))
	required := make([]string, 0, len(s))
	for _, spec := range s {
		properties[string(spec.Name)] = map[string]any{
			"type":        "string",
			"description": spec.Description,
		}
		required = append(required, string(spec.Name))
	}

	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
