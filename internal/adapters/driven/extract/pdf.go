package extract

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/ledongthuc/pdf"

	"github.com/maviyashaikh25/Lawlense/internal/core/ports/driven"
	"github.com/maviyashaikh25/Lawlense/internal/textproc"
)

// Ensure PDFExtractor implements TextExtractor
var _ driven.TextExtractor = (*PDFExtractor)(nil)

// PDFExtractor pulls plain text out of uploaded PDF files.
// Extraction never fails the caller: scanned or malformed PDFs yield an
// empty string and the document continues through the pipeline without
// text-derived features.
type PDFExtractor struct {
	logger *slog.Logger
}

// NewPDFExtractor creates a new PDFExtractor
func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// Extract reads the PDF at path and returns its whitespace-normalised
// plain text. Returns "" on any failure.
func (e *PDFExtractor) Extract(ctx context.Context, path string) string {
	f, r, err := pdf.Open(path)
	if err != nil {
		e.logger.Warn("failed to open pdf", "path", path, "error", err)
		return ""
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		e.logger.Warn("failed to extract pdf text", "path", path, "error", err)
		return ""
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		e.logger.Warn("failed to read pdf text", "path", path, "error", err)
		return ""
	}

	return textproc.CleanExtracted(buf.String())
}
