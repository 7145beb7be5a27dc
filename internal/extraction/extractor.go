package extraction

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/spigell/resume-extractor/internal/ai"
	"github.com/spigell/resume-extractor/internal/candidate"
	"github.com/spigell/resume-extractor/internal/document"
	"github.com/spigell/resume-extractor/internal/logger"
	"github.com/spigell/resume-extractor/internal/utils"
	"go.uber.org/zap"
)

const defaultMaxLogLength = 200

type documentReader interface {
	Read(ctx context.Context, path string) (*document.Signals, error)
}

// Config tunes the extraction pipeline. Zero values fall back to defaults.
type Config struct {
	Schema       candidate.Schema
	Params       ai.Params
	MaxTextChars int
	MaxLogLength int
}

// Result is the outcome of one successful extraction.
type Result struct {
	RequestID string
	Schema    candidate.Schema
	Record    candidate.Record
	// Raw is the unmodified model completion.
	Raw string
}

// Text renders the record in schema order.
func (r *Result) Text() string {
	return candidate.Format(r.Schema, r.Record)
}

// JSON renders the record as a JSON object in schema order.
func (r *Result) JSON() ([]byte, error) {
	return candidate.MarshalRecord(r.Schema, r.Record)
}

// YAML renders the record as a YAML mapping in schema order.
func (r *Result) YAML() ([]byte, error) {
	return candidate.MarshalRecordYAML(r.Schema, r.Record)
}

// Extractor runs the document -> prompt -> model -> parse -> reconcile pipeline.
// It holds no per-request state and is safe for concurrent use when its reader and generator are.
type Extractor struct {
	reader    documentReader
	generator ai.Generator
	validator *outputValidator
	schema    candidate.Schema
	params    ai.Params
	maxChars  int
	maxLogLen int
	logger    *zap.Logger
}

// New creates an Extractor.
func New(reader documentReader, generator ai.Generator, cfg Config, log *zap.Logger) (*Extractor, error) {
	if reader == nil {
		return nil, errors.New("document reader is required")
	}
	if generator == nil {
		return nil, errors.New("generator is required")
	}

	schema := cfg.Schema
	if len(schema) == 0 {
		schema = candidate.DefaultSchema()
	}

	params := cfg.Params
	if params == (ai.Params{}) {
		params = ai.DefaultParams
	}

	maxChars := cfg.MaxTextChars
	if maxChars <= 0 {
		maxChars = DefaultMaxTextChars
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	validator, err := newOutputValidator(schema)
	if err != nil {
		return nil, err
	}

	return &Extractor{
		reader:    reader,
		generator: generator,
		validator: validator,
		schema:    schema,
		params:    params,
		maxChars:  maxChars,
		maxLogLen: maxLogLen,
		logger:    logger.WithCommonFields(log, generator.Provider(), generator.Model()),
	}, nil
}

// Extract resolves the candidate record of the document at path.
// Either a complete record or an error is returned, never a partial record.
func (e *Extractor) Extract(ctx context.Context, path string) (*Result, error) {
	requestID := uuid.NewString()
	log := logger.ForRequest(e.logger, requestID, path)

	signals, err := e.reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	log.Debug("document signals extracted",
		zap.Int("text_length", utf8.RuneCountInString(signals.Text())),
		zap.Strings("links", signals.Links()),
	)

	prompt := BuildPrompt(signals.Text(), e.schema, e.maxChars)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.Generate(ctx, prompt, e.params)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	log.Debug("generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	data, err := ParseResponse(raw)
	if err != nil {
		log.Warn("model output could not be parsed", zap.Error(err))
		return nil, err
	}

	if err := e.validator.Validate(data); err != nil {
		log.Debug("model output deviates from schema", zap.Error(err))
	}

	record := candidate.Reconcile(e.schema, candidate.FieldsFromMap(data), signals)

	log.Info("candidate extracted", zap.Int("unresolved_fields", countUnresolved(record)))

	return &Result{
		RequestID: requestID,
		Schema:    e.schema,
		Record:    record,
		Raw:       raw,
	}, nil
}

func countUnresolved(record candidate.Record) int {
	n := 0
	for _, v := range record {
		if v == candidate.NA {
			n++
		}
	}
	return n
}
