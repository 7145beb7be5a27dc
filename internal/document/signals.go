package document

import (
	"fmt"
	"slices"
)

// Signals is the plain text and the hyperlinks of a single document.
// It is not modified after construction.
type Signals struct {
	text  string
	links []string
}

// NewSignals creates Signals from extracted text and links. Links keep their order and duplicates.
func NewSignals(text string, links []string) *Signals {
	return &Signals{text: text, links: slices.Clone(links)}
}

// Text returns the extracted plain text.
func (s *Signals) Text() string {
	if s == nil {
		return ""
	}
	return s.text
}

// Links returns a copy of the hyperlinks in page order.
func (s *Signals) Links() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.links)
}

// ReadError is returned when a document cannot be opened or parsed.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read document %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
