package textproc

import (
	"regexp"
	"strings"
)

// stopWords are dropped during normalisation. The set is intentionally
// small: enough to cut index noise without a full NLP dependency.
var stopWords = map[string]bool{
	"the": true, "is": true, "and": true, "or": true, "of": true,
	"to": true, "in": true, "for": true, "with": true, "on": true,
	"by": true, "an": true, "a": true,
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s]`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize lowercases the text, strips punctuation, drops stopwords
// and tokens shorter than three characters, and rejoins the remaining
// tokens with single spaces. Empty input yields empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	cleaned := nonAlphanumeric.ReplaceAllString(strings.ToLower(text), " ")

	tokens := strings.Fields(cleaned)
	kept := tokens[:0]
	for _, tok := range tokens {
		if len(tok) <= 2 || stopWords[tok] {
			continue
		}
		kept = append(kept, tok)
	}

	return strings.Join(kept, " ")
}

// CleanExtracted collapses whitespace runs in raw extracted text into
// single spaces and trims the result.
func CleanExtracted(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
