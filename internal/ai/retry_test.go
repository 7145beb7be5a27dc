package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type scriptedGenerator struct {
	outputs []string
	errs    []error
	calls   int
}

func (s *scriptedGenerator) Generate(_ context.Context, _ string, _ Params) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.outputs) {
		return s.outputs[i], nil
	}
	return "", errors.New("unexpected call")
}

func (s *scriptedGenerator) Provider() string { return "scripted" }
func (s *scriptedGenerator) Model() string    { return "scripted-model" }

func TestWithRetriesDisabledReturnsSameGenerator(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{}
	if got := WithRetries(gen, RetryPolicy{}, nil); got != Generator(gen) {
		t.Fatalf("expected the generator to be returned unchanged")
	}
}

func TestWithRetriesRecoversFromBackendError(t *testing.T) {
	t.Parallel()

	backendErr := &BackendError{Provider: "scripted", Err: errors.New("503")}
	gen := &scriptedGenerator{
		errs:    []error{backendErr, nil},
		outputs: []string{"", "{}"},
	}

	wrapped := WithRetries(gen, RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}, zap.NewNop())
	output, err := wrapped.Generate(context.Background(), "prompt", DefaultParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "{}" {
		t.Fatalf("unexpected output %q", output)
	}
	if gen.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", gen.calls)
	}
	if wrapped.Provider() != "scripted" || wrapped.Model() != "scripted-model" {
		t.Fatalf("expected provider and model to be passed through")
	}
}

func TestWithRetriesStopsAfterLimit(t *testing.T) {
	t.Parallel()

	backendErr := &BackendError{Provider: "scripted", Err: errors.New("boom")}
	gen := &scriptedGenerator{errs: []error{backendErr, backendErr, backendErr}}

	wrapped := WithRetries(gen, RetryPolicy{MaxRetries: 1, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}, nil)
	_, err := wrapped.Generate(context.Background(), "prompt", DefaultParams)

	var target *BackendError
	if !errors.As(err, &target) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if gen.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", gen.calls)
	}
}

func TestWithRetriesDoesNotRetryCancellation(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{errs: []error{context.Canceled}}
	wrapped := WithRetries(gen, RetryPolicy{MaxRetries: 3}, nil)

	_, err := wrapped.Generate(context.Background(), "prompt", DefaultParams)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected a single call, got %d", gen.calls)
	}
}
