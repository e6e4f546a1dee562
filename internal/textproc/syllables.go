package textproc

import "strings"

// Syllables estimates the syllable count of a single English word by
// counting vowel groups, with a silent-e adjustment. The estimate is
// heuristic; the readability formulas only need corpus-level accuracy.
func Syllables(word string) int {
	word = strings.ToLower(word)
	if len(word) <= 3 {
		if word == "" {
			return 0
		}
		return 1
	}

	const vowels = "aeiouy"
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	// Trailing silent e: "manage" has three vowel groups but two syllables.
	// "le" endings after a consonant keep theirs ("table").
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}
