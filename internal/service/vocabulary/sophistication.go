package vocabulary

import (
	"math"
	"strings"

	"github.com/textrefine/refinescore/internal/model"
	"github.com/textrefine/refinescore/internal/textproc"
)

// Method selects how the meaningful-word ratio adjusts the weighted band
// score. Linear is the default; Sigmoid rewards mid-heavy texts more
// aggressively.
type Method int

const (
	MethodLinear Method = iota
	MethodSigmoid
)

// Band weights. Unknown words carry a small negative weight: a text full of
// tokens absent from the frequency table is more likely gibberish than
// erudition.
const (
	weightCommon  = 0.5
	weightMid     = 1.0
	weightRare    = 1.5
	weightUnknown = -0.2
)

// Zipf thresholds separating the frequency bands.
const (
	zipfCommon = 5.0
	zipfMid    = 3.5
)

// Sophistication classifies every content word of text into a frequency
// band and derives a weighted score. Words flagged by a correctness issue
// are analyzed as their first suggested replacement, so typos are scored as
// the word the writer meant rather than as exotic vocabulary.
func Sophistication(text string, issues []model.TextIssue, method Method) model.SophisticationResult {
	words := textproc.ContentWords(text)
	breakdown := model.SophisticationBreakdown{
		Common:  []string{},
		Mid:     []string{},
		Rare:    []string{},
		Unknown: []string{},
	}
	if len(words) == 0 {
		return model.SophisticationResult{
			Level:     model.SophisticationLevelFor(0),
			Breakdown: breakdown,
		}
	}

	corrections := replacementIndex(issues)
	var common, mid, rare, unknown int
	for _, word := range words {
		if replacement, ok := corrections[word]; ok {
			word = replacement
		}
		zipf, found := textproc.ZipfFrequency(word)
		switch {
		case !found || zipf <= 0:
			unknown++
			breakdown.Unknown = append(breakdown.Unknown, word)
		case zipf >= zipfCommon:
			common++
			breakdown.Common = append(breakdown.Common, word)
		case zipf >= zipfMid:
			mid++
			breakdown.Mid = append(breakdown.Mid, word)
		default:
			rare++
			breakdown.Rare = append(breakdown.Rare, word)
		}
	}

	n := float64(len(words))
	weighted := (weightCommon*float64(common) +
		weightMid*float64(mid) +
		weightRare*float64(rare) +
		weightUnknown*float64(unknown)) / n
	meaningfulRatio := float64(rare+mid) / n

	var score float64
	switch method {
	case MethodSigmoid:
		ratioAdj := 1 / (1 + math.Exp(-5*(meaningfulRatio-0.4)))
		score = math.Sqrt(math.Max(0, weighted*ratioAdj))
	default:
		ratioAdj := 0.5 + 0.5*meaningfulRatio
		score = weighted * ratioAdj
	}
	score = model.Round(clamp01(score), 4)

	return model.SophisticationResult{
		Score:        score,
		WordCount:    len(words),
		CommonCount:  common,
		MidCount:     mid,
		RareCount:    rare,
		UnknownCount: unknown,
		Level:        model.SophisticationLevelFor(score),
		Breakdown:    breakdown,
	}
}

// replacementIndex maps the lowercased offending text of each issue to its
// first suggested replacement.
func replacementIndex(issues []model.TextIssue) map[string]string {
	index := make(map[string]string, len(issues))
	for _, issue := range issues {
		if len(issue.Replacements) == 0 {
			continue
		}
		key := strings.ToLower(issue.ErrorText)
		if _, exists := index[key]; !exists {
			index[key] = strings.ToLower(issue.Replacements[0])
		}
	}
	return index
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
