package candidate

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`)
	// emailShape is a loose check applied to model values only.
	emailShape = regexp.MustCompile(`^.+@.+\..+`)
)

// Evidence is what the document itself says, independent of the model.
type Evidence interface {
	Text() string
	Links() []string
}

// Record is the final candidate profile. Every schema field is present;
// unresolved fields hold NA.
type Record map[Field]string

// Get returns the value of the field or NA.
func (r Record) Get(field Field) string {
	if v, ok := r[field]; ok {
		return v
	}
	return NA
}

// Reconcile resolves every schema field from the model fields and the document evidence.
// It never fails: anything that cannot be resolved becomes NA.
func Reconcile(schema Schema, fields Fields, evidence Evidence) Record {
	var (
		text  string
		links []string
	)
	if evidence != nil {
		text = evidence.Text()
		links = evidence.Links()
	}

	record := make(Record, len(schema))
	for _, spec := range schema {
		record[spec.Name] = resolve(spec.Name, fields.Get(spec.Name), text, links)
	}
	return record
}

func resolve(field Field, value Value, text string, links []string) string {
	switch field {
	case FieldLinkedIn, FieldGitHub:
		// links embedded in the document beat whatever the model guessed
		if link := FindProfileLink(links, string(field)); link != NA {
			return link
		}
		if value.Missing() {
			return NA
		}
		return value.Text()
	case FieldEmail:
		if value.Missing() || !emailShape.MatchString(value.Text()) {
			return FindEmail(text)
		}
		return value.Text()
	default:
		if value.Missing() {
			return NA
		}
		return value.Text()
	}
}

// FindProfileLink returns the first link containing the platform name, case-insensitively.
func FindProfileLink(links []string, platform string) string {
	platform = strings.ToLower(platform)
	for _, link := range links {
		if strings.Contains(strings.ToLower(link), platform) {
			return link
		}
	}
	return NA
}

// FindEmail returns the first email address found in the text.
func FindEmail(text string) string {
	if match := emailPattern.FindString(text); match != "" {
		return match
	}
	return NA
}
