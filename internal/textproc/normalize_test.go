package textproc

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty",
			text: "",
			want: "",
		},
		{
			name: "lowercases and strips punctuation",
			text: "The Party SHALL indemnify, defend & hold harmless!",
			want: "party shall indemnify defend hold harmless",
		},
		{
			name: "drops stopwords and short tokens",
			text: "the terms of an agreement by it",
			want: "terms agreement",
		},
		{
			name: "keeps numbers",
			text: "Section 42 applies from 2024",
			want: "section applies from 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.text); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCleanExtracted(t *testing.T) {
	got := CleanExtracted("  line one\n\n\tline   two  \r\n three ")
	want := "line one line two three"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
