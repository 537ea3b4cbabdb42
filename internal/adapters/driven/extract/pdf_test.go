package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestPDFExtractor_MissingFile(t *testing.T) {
	e := NewPDFExtractor(nil)

	got := e.Extract(context.Background(), "/no/such/file.pdf")
	if got != "" {
		t.Errorf("expected empty string for missing file, got %q", got)
	}
}

func TestPDFExtractor_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	e := NewPDFExtractor(nil)
	if got := e.Extract(context.Background(), path); got != "" {
		t.Errorf("expected empty string for malformed pdf, got %q", got)
	}
}
