// Package textproc provides the English text primitives behind the
// analyzers: word and sentence tokenization, syllable counting, classical
// readability formulas, and lookups against embedded word lists (Zipf
// frequency table, Dale-Chall familiar words, stop words).
//
// Tokenization is Unicode-aware. A word token starts with a letter and may
// contain digits, single interior hyphens, and interior apostrophes, so
// "well-known" and "don't" are single tokens. Offsets are not tracked; the
// analyzers match issues to tokens by text, not position.
//
// All functions are safe for concurrent use. The embedded tables are parsed
// lazily, once.
package textproc

import (
	"bufio"
	"bytes"
	"strings"
	"sync"
	"unicode"

	"github.com/textrefine/refinescore/internal/textproc/data"
)

// Words returns the word tokens of s in order of appearance, case preserved.
func Words(s string) []string {
	if s == "" {
		return nil
	}
	return scanWords(s)
}

// AlphabeticWords returns the lowercased word tokens of s that consist
// solely of letters. Tokens with digits, hyphens or apostrophes are dropped.
func AlphabeticWords(s string) []string {
	words := Words(s)
	kept := words[:0:0]
	for _, w := range words {
		if isAlphabetic(w) {
			kept = append(kept, strings.ToLower(w))
		}
	}
	return kept
}

// ContentWords returns AlphabeticWords minus stop words: the token set the
// vocabulary analyzer scores.
func ContentWords(s string) []string {
	words := AlphabeticWords(s)
	kept := words[:0:0]
	for _, w := range words {
		if !IsStopWord(w) {
			kept = append(kept, w)
		}
	}
	return kept
}

// IsStopWord reports whether the lowercased word is in the stop word list.
func IsStopWord(word string) bool {
	return stopwords()[word]
}

// IsFamiliar reports whether the lowercased word is in the Dale-Chall
// familiar word list.
func IsFamiliar(word string) bool {
	return familiar()[strings.ToLower(word)]
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

var (
	stopwords = sync.OnceValue(func() map[string]bool {
		return loadWordSet(data.StopwordsEN)
	})
	familiar = sync.OnceValue(func() map[string]bool {
		return loadWordSet(data.DaleChallFamiliar)
	})
)

func loadWordSet(raw []byte) map[string]bool {
	set := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word != "" {
			set[word] = true
		}
	}
	return set
}
