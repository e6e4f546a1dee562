package textproc

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"sync"

	"github.com/textrefine/refinescore/internal/textproc/data"
)

// zipfTable parses the embedded frequency table on first use. Malformed
// lines are skipped; the table is read-only after construction.
var zipfTable = sync.OnceValue(func() map[string]float64 {
	table := make(map[string]float64, 1536)
	sc := bufio.NewScanner(bytes.NewReader(data.ZipfEN))
	for sc.Scan() {
		word, value, ok := strings.Cut(sc.Text(), "\t")
		if !ok {
			continue
		}
		z, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		table[strings.TrimSpace(word)] = z
	}
	return table
})

// ZipfFrequency returns the Zipf frequency of the word (log10 occurrences
// per billion) and whether the word is in the table. Lookup is by lowercase
// form; 0 means unseen.
func ZipfFrequency(word string) (float64, bool) {
	z, ok := zipfTable()[strings.ToLower(word)]
	return z, ok
}
