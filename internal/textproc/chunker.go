package textproc

import (
	"regexp"
	"strings"
)

// paragraphBreak matches a blank-line paragraph boundary, including
// lines that contain only whitespace.
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// Separator is re-inserted between paragraphs accumulated into one
// chunk so reconstructed text stays readable.
const Separator = "\n\n"

// Chunk splits text into passages of at most maxSize characters,
// breaking only at paragraph boundaries.
//
// Paragraphs are accumulated into a running buffer; when appending the
// next paragraph would push the buffer past maxSize the buffer is
// flushed first. A single paragraph longer than maxSize is emitted as
// its own oversized chunk rather than split mid-sentence. Whitespace-only
// input yields no chunks. Pure function: identical input always yields
// identical output.
func Chunk(text string, maxSize int) []string {
	var chunks []string
	var current strings.Builder

	for _, para := range paragraphBreak.Split(text, -1) {
		if current.Len() > 0 && current.Len()+len(para) > maxSize {
			if c := strings.TrimSpace(current.String()); c != "" {
				chunks = append(chunks, c)
			}
			current.Reset()
		}
		current.WriteString(para)
		current.WriteString(Separator)
	}

	if c := strings.TrimSpace(current.String()); c != "" {
		chunks = append(chunks, c)
	}

	return chunks
}
