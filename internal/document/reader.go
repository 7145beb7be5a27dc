package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Reader extracts Signals from PDF documents.
type Reader struct {
	logger *zap.Logger
}

// NewReader creates a PDF reader. A nil logger disables logging.
func NewReader(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger}
}

// Read extracts text and hyperlinks from the PDF file at path.
func (r *Reader) Read(ctx context.Context, path string) (*Signals, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &ReadError{Path: path, Err: errors.New("path is empty")}
	}

	f, reader, err := openPDF(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	defer f.Close()

	return r.read(ctx, path, reader)
}

// ReadBytes extracts text and hyperlinks from an in-memory PDF. The name is used in errors and logs.
func (r *Reader) ReadBytes(ctx context.Context, name string, data []byte) (*Signals, error) {
	reader, err := newPDFReader(data)
	if err != nil {
		return nil, &ReadError{Path: name, Err: err}
	}
	return r.read(ctx, name, reader)
}

func (r *Reader) read(ctx context.Context, name string, reader *pdf.Reader) (*Signals, error) {
	var (
		text  strings.Builder
		links []string
	)

	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := pageText(page)
		if err != nil {
			r.logger.Warn("skipping page text",
				zap.String("document", name),
				zap.Int("page", i),
				zap.Error(err),
			)
		} else {
			text.WriteString(pageText)
		}

		links = append(links, pageLinks(page)...)
	}

	r.logger.Debug("document read",
		zap.String("document", name),
		zap.Int("pages", pages),
		zap.Int("text_length", text.Len()),
		zap.Int("links", len(links)),
	)

	return NewSignals(text.String(), links), nil
}

// The pdf package panics on some malformed objects, so every call into it is guarded.

func openPDF(path string) (f *os.File, reader *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if f != nil {
				f.Close()
			}
			f, reader, err = nil, nil, fmt.Errorf("parse pdf: %v", rec)
		}
	}()
	return pdf.Open(path)
}

func newPDFReader(data []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reader, err = nil, fmt.Errorf("parse pdf: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("extract text: %v", rec)
		}
	}()
	return page.GetPlainText(nil)
}

// pageLinks returns URI actions of the page link annotations in their order.
func pageLinks(page pdf.Page) (links []string) {
	defer func() {
		if rec := recover(); rec != nil {
			links = nil
		}
	}()

	annots := page.V.Key("Annots")
	for i := 0; i < annots.Len(); i++ {
		action := annots.Index(i).Key("A")
		if action.IsNull() {
			continue
		}
		uri := strings.TrimSpace(action.Key("URI").Text())
		if uri != "" {
			links = append(links, uri)
		}
	}
	return links
}
