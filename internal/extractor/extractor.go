// Package extractor converts uploaded study material into plain text.
// PDFs go through a primary parser (ledongthuc/pdf) with a fallback to a
// secondary one (rsc.io/pdf); anything else is treated as UTF-8 text with
// undecodable byte sequences dropped.
package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"studyquiz/internal/domain"
	"studyquiz/internal/logger"

	ldpdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	rpdf "rsc.io/pdf"
)

// pdfParser extracts per-page text from raw PDF bytes
type pdfParser func(data []byte) ([]string, error)

// Extractor turns a domain.Material into a text blob. The zero value is
// not usable; call New.
type Extractor struct {
	primary   pdfParser
	secondary pdfParser
}

func New() *Extractor {
	return &Extractor{
		primary:   parseWithLedongthuc,
		secondary: parseWithRscPdf,
	}
}

// Extract returns the text content of the material. It fails soft: on any
// decoding error the returned blob is empty and the error describes what
// went wrong, for the display layer only. It never panics past this
// boundary.
func (e *Extractor) Extract(material domain.Material) (string, error) {
	if !material.IsPDF() {
		return decodeText(material.Data), nil
	}

	pages, err := e.parsePDF(material.Data)
	if err != nil {
		logger.Get().Warn("PDF extraction failed with both parsers",
			zap.String("filename", material.Filename),
			zap.Error(err),
		)
		return "", domain.NewExtractionError(material.Filename, err)
	}

	// Pages join in document order; blank pages stay as empty strings so
	// ordering is preserved.
	return strings.Join(pages, "\n"), nil
}

func (e *Extractor) parsePDF(data []byte) (pages []string, err error) {
	pages, primaryErr := safeParse(e.primary, data)
	if primaryErr == nil {
		return pages, nil
	}

	logger.Get().Debug("primary PDF parser failed, trying secondary", zap.Error(primaryErr))

	pages, secondaryErr := safeParse(e.secondary, data)
	if secondaryErr == nil {
		return pages, nil
	}

	return nil, fmt.Errorf("primary parser: %v; secondary parser: %w", primaryErr, secondaryErr)
}

// safeParse shields callers from parser panics; both PDF libraries panic
// on some malformed inputs.
func safeParse(parse pdfParser, data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	return parse(data)
}

func parseWithLedongthuc(data []byte) ([]string, error) {
	reader, err := ldpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// An unreadable page extracts as empty rather than breaking
			// page ordering
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func parseWithRscPdf(data []byte) ([]string, error) {
	reader, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		var sb strings.Builder
		for _, t := range page.Content().Text {
			sb.WriteString(t.S)
		}
		pages = append(pages, sb.String())
	}
	return pages, nil
}

// decodeText interprets raw bytes as UTF-8, dropping invalid sequences
// instead of failing
func decodeText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
