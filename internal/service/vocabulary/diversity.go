package vocabulary

import (
	"github.com/textrefine/refinescore/internal/model"
	"github.com/textrefine/refinescore/internal/textproc"
)

// Diversity computes the type-token ratio over the content words of text:
// distinct lowercased tokens divided by total tokens. Texts that repeat
// themselves score low; varied wording scores high.
func Diversity(text string) model.LexicalDiversityResult {
	words := textproc.ContentWords(text)
	if len(words) == 0 {
		return model.LexicalDiversityResult{}
	}

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}

	return model.LexicalDiversityResult{
		TTR:         model.Round(float64(len(unique))/float64(len(words)), 4),
		WordCount:   len(words),
		UniqueCount: len(unique),
	}
}
