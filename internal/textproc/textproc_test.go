package textproc

import (
	"slices"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		// -- Basic tokens --

		{"single word", "hello", []string{"hello"}},
		{"two words", "foo bar", []string{"foo", "bar"}},
		{"case preserved", "Hello World", []string{"Hello", "World"}},
		{"accented letters", "café naïve", []string{"café", "naïve"}},

		// -- Apostrophes --

		{"ascii apostrophe joins", "don't panic", []string{"don't", "panic"}},
		{"curly apostrophe joins", "it’s fine", []string{"it’s", "fine"}},
		{"trailing apostrophe drops", "dogs' tails", []string{"dogs", "tails"}},
		{"leading apostrophe drops", "rock 'n' roll", []string{"rock", "n", "roll"}},

		// -- Hyphens --

		{"single hyphen joins", "well-known fact", []string{"well-known", "fact"}},
		{"chained hyphens join", "state-of-the-art", []string{"state-of-the-art"}},
		{"double hyphen breaks", "one--two", []string{"one", "two"}},
		{"trailing hyphen drops", "semi- finished", []string{"semi", "finished"}},

		// -- Digits --

		{"digits inside a word", "B2B sales", []string{"B2B", "sales"}},
		{"leading digit is not a word", "42 words", []string{"words"}},
		{"hyphen to digits joins", "top-10 list", []string{"top-10", "list"}},

		// -- Edges --

		{"empty", "", nil},
		{"whitespace only", "  \t\n ", nil},
		{"punctuation only", "?!...;", nil},
		{"punctuation stripped", "Stop, now! (please)", []string{"Stop", "now", "please"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Words(tc.input)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Words(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestAlphabeticWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercases", "Hello WORLD", []string{"hello", "world"}},
		{"drops apostrophe tokens", "don't stop me now", []string{"stop", "me", "now"}},
		{"drops hyphen tokens", "a well-known fact", []string{"a", "fact"}},
		{"drops digit tokens", "B2B sales rose", []string{"sales", "rose"}},
		{"empty", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AlphabeticWords(tc.input)
			if !slices.Equal(got, tc.want) {
				t.Errorf("AlphabeticWords(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestContentWords(t *testing.T) {
	got := ContentWords("The cat sat on the mat")
	want := []string{"cat", "sat", "mat"}
	if !slices.Equal(got, want) {
		t.Errorf("ContentWords = %q, want %q", got, want)
	}
}

func TestIsStopWord(t *testing.T) {
	for word, want := range map[string]bool{
		"the": true,
		"on":  true,
		"we":  true,
		"cat": false,
		"mat": false,
	} {
		if got := IsStopWord(word); got != want {
			t.Errorf("IsStopWord(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestIsFamiliar(t *testing.T) {
	if !IsFamiliar("cat") {
		t.Error("IsFamiliar(cat) = false, want true")
	}
	if !IsFamiliar("Cat") {
		t.Error("IsFamiliar(Cat) = false, want true (lookup is case-insensitive)")
	}
	if IsFamiliar("perspicacious") {
		t.Error("IsFamiliar(perspicacious) = true, want false")
	}
}
