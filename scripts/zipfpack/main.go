// zipfpack regenerates the embedded Zipf frequency table from a raw
// word-frequency export.
//
// Usage (run from the repo root):
//
//	go run scripts/zipfpack/main.go -in wordfreq_en.txt
//
// The input holds one entry per line, "word<TAB>zipf" by default or
// "word<TAB>count" with -counts (space separation also works). Words are
// lowercased; entries that are not plain alphabetic words are dropped and
// duplicates keep the higher frequency. The output is the alphabetically
// sorted table embedded by internal/textproc/data.
//
// Zipf frequency is log10 of occurrences per billion words: 6+ is very
// common ("the"), 3-4 is educated vocabulary, under 2 is rare or technical.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

type entry struct {
	word string
	zipf float64
}

func main() {
	in := flag.String("in", "", "source frequency list (word<TAB>value per line)")
	out := flag.String("out", filepath.Join("internal", "textproc", "data", "zipf_en.tsv"), "output table path")
	counts := flag.Bool("counts", false, "treat values as raw corpus counts instead of Zipf frequencies")
	minZipf := flag.Float64("min", 1.0, "drop words below this Zipf frequency")
	limit := flag.Int("limit", 0, "keep only the N most frequent words (0 = no cap)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "error: -in is required")
		flag.Usage()
		os.Exit(2)
	}

	entries, err := readEntries(*in, *counts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: read %s: %v\n", *in, err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "error: no usable entries in input")
		os.Exit(1)
	}

	entries = filterEntries(entries, *minZipf, *limit)

	if err := writeTable(*out, entries); err != nil {
		fmt.Fprintf(os.Stderr, "error: write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d words)\n", *out, len(entries))
}

func readEntries(path string, counts bool) ([]entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	type raw struct {
		word  string
		value float64
	}
	var raws []raw
	var total float64

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, value, ok := strings.Cut(line, "\t")
		if !ok {
			word, value, ok = strings.Cut(line, " ")
			if !ok {
				continue
			}
		}
		word = strings.ToLower(strings.TrimSpace(word))
		if !tableWord(word) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || v <= 0 {
			continue
		}
		raws = append(raws, raw{word, v})
		total += v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Duplicates (casing collisions after lowercasing) keep the higher value.
	best := make(map[string]float64, len(raws))
	for _, r := range raws {
		z := r.value
		if counts {
			z = math.Log10(r.value / total * 1e9)
		}
		if z > best[r.word] {
			best[r.word] = z
		}
	}

	entries := make([]entry, 0, len(best))
	for w, z := range best {
		entries = append(entries, entry{word: w, zipf: z})
	}
	return entries, nil
}

func filterEntries(entries []entry, minZipf float64, limit int) []entry {
	kept := entries[:0]
	for _, e := range entries {
		if e.zipf >= minZipf {
			kept = append(kept, e)
		}
	}
	if limit > 0 && len(kept) > limit {
		slices.SortFunc(kept, func(a, b entry) int {
			switch {
			case a.zipf > b.zipf:
				return -1
			case a.zipf < b.zipf:
				return 1
			}
			return 0
		})
		kept = kept[:limit]
	}
	slices.SortFunc(kept, func(a, b entry) int { return strings.Compare(a.word, b.word) })
	return kept
}

func writeTable(path string, entries []entry) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%.2f\n", e.word, e.zipf)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// tableWord reports whether the word is usable as a table key: ASCII
// letters with at most internal apostrophes ("don't").
func tableWord(word string) bool {
	if word == "" || word[0] == '\'' || word[len(word)-1] == '\'' {
		return false
	}
	for _, r := range word {
		if (r < 'a' || r > 'z') && r != '\'' {
			return false
		}
	}
	return true
}
