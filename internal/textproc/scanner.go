package textproc

import (
	"unicode"
	"unicode/utf8"
)

// scanWords splits s into word tokens using a rune-by-rune scan. The caller
// guarantees s is non-empty.
//
// A word starts with a letter and continues over letters and digits. A
// single hyphen joins two such runs ("state-of-the-art" is one token, "--"
// breaks). An apostrophe (U+0027, U+2019, U+02BC) joins letter runs
// ("don't", "it’s"). Everything that is not part of a word is skipped.
func scanWords(s string) []string {
	words := make([]string, 0, len(s)/6+1)

	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsLetter(r) {
			i += size
			continue
		}

		start := i
		i = consumeAlnumRun(s, i)

		for i < len(s) {
			j, joined := joinAt(s, start, i)
			if !joined {
				break
			}
			i = j
		}

		words = append(words, s[start:i])
	}

	return words
}

// joinAt tries to extend the word ending at pos across a single hyphen or
// apostrophe. Returns the new end offset and whether an extension happened.
func joinAt(s string, start, pos int) (int, bool) {
	r, size := utf8.DecodeRuneInString(s[pos:])

	switch r {
	case '-':
		next := pos + size
		if next >= len(s) {
			return pos, false
		}
		nr, _ := utf8.DecodeRuneInString(s[next:])
		if nr == '-' || (!unicode.IsLetter(nr) && !unicode.IsDigit(nr)) {
			return pos, false
		}
		return consumeAlnumRun(s, next), true

	case '\'', '’', 'ʼ':
		next := pos + size
		if next >= len(s) {
			return pos, false
		}
		nr, _ := utf8.DecodeRuneInString(s[next:])
		pr, _ := utf8.DecodeLastRuneInString(s[start:pos])
		if !unicode.IsLetter(nr) || !unicode.IsLetter(pr) {
			return pos, false
		}
		return consumeLetterRun(s, next), true
	}

	return pos, false
}

func consumeAlnumRun(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		pos += size
	}
	return pos
}

func consumeLetterRun(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsLetter(r) {
			break
		}
		pos += size
	}
	return pos
}
