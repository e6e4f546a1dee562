// Package data embeds the word lists and frequency data used by textproc.
package data

import _ "embed"

// ZipfEN is a tab-separated word/Zipf-frequency table for English.
// Zipf frequency is log10 of occurrences per billion words; higher = more
// common. Regenerate with scripts/zipfpack.
//
//go:embed zipf_en.tsv
var ZipfEN []byte

// DaleChallFamiliar is the list of words counted as familiar by the
// Dale-Chall readability formula, one lowercase word per line.
//
//go:embed dale_chall.txt
var DaleChallFamiliar []byte

// StopwordsEN is the English stop word list, one lowercase word per line.
//
//go:embed stopwords_en.txt
var StopwordsEN []byte
