package textproc

import (
	"slices"
	"testing"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		// -- Plain boundaries --

		{"two sentences", "Hello world. How are you?",
			[]string{"Hello world.", "How are you?"}},
		{"exclamation", "Stop! Come back.",
			[]string{"Stop!", "Come back."}},
		{"no terminal punctuation", "just a fragment",
			[]string{"just a fragment"}},
		{"punctuation cluster", "What?! Really?!",
			[]string{"What?!", "Really?!"}},
		{"ellipsis rune", "Hmm… Right.",
			[]string{"Hmm…", "Right."}},
		{"ascii ellipsis no break before lowercase", "Wait... what? No!",
			[]string{"Wait... what?", "No!"}},

		// -- Abbreviations and initials --

		{"title abbreviation", "Mr. Smith went to Washington.",
			[]string{"Mr. Smith went to Washington."}},
		{"mid-sentence etc", "We bought apples, pears, etc. and left.",
			[]string{"We bought apples, pears, etc. and left."}},
		{"initials", "J. Smith arrived.",
			[]string{"J. Smith arrived."}},
		{"multiple titles then break", "Dr. Brown and Mrs. Lee spoke. They left.",
			[]string{"Dr. Brown and Mrs. Lee spoke.", "They left."}},
		{"multi-dot abbreviation", "It runs at 5 p.m. every day.",
			[]string{"It runs at 5 p.m. every day."}},

		// -- Numbers --

		{"decimal point", "Pi is 3.14 exactly.",
			[]string{"Pi is 3.14 exactly."}},
		{"sentence then number start", "Count them. 42 remain.",
			[]string{"Count them.", "42 remain."}},

		// -- Quotes --

		{"break before opening quote", `He said stop. "Go now," she replied.`,
			[]string{"He said stop.", `"Go now," she replied.`}},

		// -- Blank lines --

		{"blank line splits without punctuation", "First paragraph\n\nsecond thing",
			[]string{"First paragraph", "second thing"}},

		// -- Edges --

		{"empty", "", nil},
		{"whitespace only", "   \n ", nil},
		{"single sentence with newline inside", "One line\nwrapped here.",
			[]string{"One line\nwrapped here."}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Sentences(tc.input)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Sentences(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
