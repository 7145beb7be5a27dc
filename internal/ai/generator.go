package ai

import (
	"context"
	"fmt"
)

// Params controls a single text generation call.
type Params struct {
	// MaxTokens caps the number of generated tokens.
	MaxTokens int
	// Temperature is kept near zero for extraction.
	Temperature float64
	// Sample enables sampling; greedy decoding is used when false.
	Sample bool
}

// DefaultParams are the settings used for field extraction.
var DefaultParams = Params{
	MaxTokens:   512,
	Temperature: 0.01,
	Sample:      false,
}

// Generator sends a prompt to a text generation backend and returns the completion only,
// without the prompt echoed back.
type Generator interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
	Provider() string
	Model() string
}

// BackendError wraps any failure of the generation backend.
type BackendError struct {
	Provider string
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Provider, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
