package driven

import "context"

// TextExtractor pulls plain text out of an uploaded file.
// Extraction is best-effort: implementations return an empty string on
// failure instead of an error, so a document with no extractable text
// is still stored and visible to its owner.
type TextExtractor interface {
	Extract(ctx context.Context, path string) string
}
