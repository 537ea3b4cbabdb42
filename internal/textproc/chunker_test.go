package textproc

import (
	"strings"
	"testing"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		maxSize int
		want    []string
	}{
		{
			name:    "empty input",
			text:    "",
			maxSize: 1000,
			want:    nil,
		},
		{
			name:    "whitespace only",
			text:    "   \n\n  \t\n\n ",
			maxSize: 1000,
			want:    nil,
		},
		{
			name:    "two paragraphs fit one chunk",
			text:    "Paragraph one.\n\nParagraph two.",
			maxSize: 1000,
			want:    []string{"Paragraph one.\n\nParagraph two."},
		},
		{
			name:    "paragraphs split across chunks",
			text:    "aaaa\n\nbbbb\n\ncccc",
			maxSize: 8,
			want:    []string{"aaaa", "bbbb", "cccc"},
		},
		{
			name:    "oversized paragraph emitted whole",
			text:    strings.Repeat("x", 50),
			maxSize: 10,
			want:    []string{strings.Repeat("x", 50)},
		},
		{
			name:    "blank line with spaces is a boundary",
			text:    "first\n  \nsecond",
			maxSize: 8,
			want:    []string{"first", "second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.text, tt.maxSize)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d chunks, got %d: %q", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestChunkDeterministic(t *testing.T) {
	text := "One paragraph.\n\nAnother paragraph.\n\nA third, somewhat longer paragraph for good measure."
	first := Chunk(text, 40)
	for i := 0; i < 10; i++ {
		again := Chunk(text, 40)
		if len(again) != len(first) {
			t.Fatalf("run %d: expected %d chunks, got %d", i, len(first), len(again))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d chunk %d differs", i, j)
			}
		}
	}
}

func TestChunkNoContentDropped(t *testing.T) {
	text := "alpha beta\n\ngamma delta\n\nepsilon zeta eta theta\n\niota"
	chunks := Chunk(text, 15)

	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(strings.ReplaceAll(text, "\n", " ")) {
		if !strings.Contains(joined, word) {
			t.Errorf("word %q lost during chunking", word)
		}
	}

	// No chunk exceeds maxSize unless it is a single oversized paragraph
	for _, c := range chunks {
		if len(c) > 15 && strings.Contains(c, Separator) {
			t.Errorf("multi-paragraph chunk exceeds max size: %q", c)
		}
	}
}
