package extraction

import (
	"context"
	"errors"
	"fmt"

	"github.com/spigell/resume-extractor/internal/ai"
	"github.com/spigell/resume-extractor/internal/document"
)

// NoJSONFoundError is returned when the completion contains no brace-delimited block.
type NoJSONFoundError struct {
	Raw string
}

func (e *NoJSONFoundError) Error() string {
	return "no json object found in model output"
}

// JSONParseError is returned when the first block is not valid JSON even after sanitizing.
type JSONParseError struct {
	Err error
	Raw string
}

func (e *JSONParseError) Error() string {
	return fmt.Sprintf("parse model output: %v", e.Err)
}

func (e *JSONParseError) Unwrap() error {
	return e.Err
}

// Describe turns a pipeline error into the text shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var (
		readErr    *document.ReadError
		backendErr *ai.BackendError
		noJSONErr  *NoJSONFoundError
		parseErr   *JSONParseError
	)

	switch {
	case errors.As(err, &readErr):
		return fmt.Sprintf("Failed to read the PDF document: %v", readErr.Err)
	case errors.As(err, &backendErr):
		return fmt.Sprintf("The text generation backend failed: %v", backendErr.Err)
	case errors.As(err, &noJSONErr):
		return fmt.Sprintf("Could not find a JSON block in the model output.\n\nModel Output:\n%s", noJSONErr.Raw)
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Failed to parse JSON: %v\n\nModel Output:\n%s", parseErr.Err, parseErr.Raw)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Extraction was cancelled: %v", err)
	default:
		return fmt.Sprintf("Extraction failed: %v", err)
	}
}
