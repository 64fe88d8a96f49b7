package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-match/internal/domain/document"
)

// ErrExtraction wraps every failure to read text out of an otherwise supported document.
var ErrExtraction = errors.New("extraction error")

// Extractor pulls plain text out of stored resume files. It only reads the file.
type Extractor struct {
	pdfPages       func(path string) ([]string, error)
	docxParagraphs func(path string) ([]string, error)
}

func New() *Extractor {
	return &Extractor{pdfPages: readPDFPages, docxParagraphs: readDOCXParagraphs}
}

// Extract returns the text of the file at path. PDF pages are concatenated in page order and
// DOCX paragraphs in document order, each joined by newlines.
func (e *Extractor) Extract(ctx context.Context, path string, format document.Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		parts []string
		err   error
	)
	switch format {
	case document.FormatPDF:
		parts, err = safeRead(e.pdfPages, path)
	case document.FormatDOCX:
		parts, err = safeRead(e.docxParagraphs, path)
	default:
		return "", fmt.Errorf("%w: %q", document.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %v", ErrExtraction, format, path, err)
	}

	return strings.Join(parts, "\n"), nil
}

// safeRead turns reader panics on malformed input into errors.
func safeRead(read func(string) ([]string, error), path string) (parts []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			parts = nil
			err = fmt.Errorf("malformed document: %v", r)
		}
	}()
	return read(path)
}
