package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// abbreviations maps common English abbreviations (lowercase, with trailing
// dot) to true. Used to suppress false sentence breaks. Multi-dot entries
// like "e.g." are matched dot by dot via wordBefore.
var abbreviations = map[string]bool{
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "prof.": true,
	"sr.": true, "jr.": true, "st.": true, "mt.": true, "ft.": true,
	"vs.": true, "etc.": true, "e.g.": true, "i.e.": true, "cf.": true,
	"fig.": true, "inc.": true, "ltd.": true, "co.": true, "corp.": true,
	"dept.": true, "est.": true, "approx.": true, "no.": true, "vol.": true,
	"pp.": true, "p.": true, "ed.": true, "al.": true,
	"jan.": true, "feb.": true, "mar.": true, "apr.": true, "jun.": true,
	"jul.": true, "aug.": true, "sep.": true, "sept.": true, "oct.": true,
	"nov.": true, "dec.": true,
	"a.m.": true, "p.m.": true, "u.s.": true, "u.k.": true,
}

// Sentences splits s into trimmed, non-empty sentences. Boundaries are
// terminal punctuation (. ? !) followed by whitespace and an uppercase
// letter or opening quote, or a blank line. Dots after known abbreviations
// do not break.
func Sentences(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var sentences []string
	emit := func(start, end int) int {
		if sent := strings.TrimSpace(s[start:end]); sent != "" {
			sentences = append(sentences, sent)
		}
		return end
	}

	sentStart := 0
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])

		// Blank line forces a break regardless of punctuation.
		if r == '\n' && strings.HasPrefix(s[i+1:], "\n") {
			j := i
			for j < len(s) && s[j] == '\n' {
				j++
			}
			sentStart = emit(sentStart, j)
			i = j
			continue
		}

		if r != '.' && r != '?' && r != '!' && r != '…' {
			i += size
			continue
		}

		if r == '.' && isAbbreviationDot(s, i) {
			i += size
			continue
		}

		// Consume the whole punctuation cluster ("?!", "...", "?!?").
		j := i + size
		for j < len(s) {
			nr, ns := utf8.DecodeRuneInString(s[j:])
			if nr != '.' && nr != '?' && nr != '!' && nr != '…' {
				break
			}
			j += ns
		}

		if startsNewSentence(s, j) {
			sentStart = emit(sentStart, j)
		}
		i = j
	}

	if sentStart < len(s) {
		emit(sentStart, len(s))
	}

	return sentences
}

// startsNewSentence reports whether position pos is the end of the input or
// is followed by whitespace and then an uppercase letter, a digit, or an
// opening quote.
func startsNewSentence(s string, pos int) bool {
	i := pos
	foundSpace := false
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			foundSpace = true
			i += size
			continue
		}
		if !foundSpace {
			return false
		}
		return unicode.IsUpper(r) || unicode.IsDigit(r) || r == '"' || r == '“' || r == '\''
	}
	return true
}

// isAbbreviationDot reports whether the dot at byte position dotPos ends a
// known abbreviation rather than a sentence.
func isAbbreviationDot(s string, dotPos int) bool {
	word, _ := wordBefore(s, dotPos)
	if word == "" {
		return false
	}
	// Single letters read as initials ("J. Smith").
	if utf8.RuneCountInString(word) == 1 && unicode.IsUpper([]rune(word)[0]) {
		return true
	}
	return abbreviations[strings.ToLower(word)+"."]
}

// wordBefore extracts the word immediately before byte position pos,
// walking back over interior dots so multi-part abbreviations like "e.g."
// resolve as one word ("e.g"). Returns the word and its start offset.
func wordBefore(s string, pos int) (string, int) {
	i := pos
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if unicode.IsLetter(r) {
			i -= size
			continue
		}
		// An interior dot with a letter before it is part of the word.
		if r == '.' && i-size > 0 {
			pr, _ := utf8.DecodeLastRuneInString(s[:i-size])
			if unicode.IsLetter(pr) {
				i -= size
				continue
			}
		}
		break
	}
	if i == pos {
		return "", pos
	}
	return s[i:pos], i
}
