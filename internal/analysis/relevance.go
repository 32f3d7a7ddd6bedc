package analysis

import (
	"strings"

	"github.com/kljensen/snowball"
)

// Relevance scoring constants. A non-empty, non-dismissive answer never
// scores below the floor: keyword absence alone must not imply zero.
const (
	relevanceFloor  = 2.5
	relevanceSpan   = 7.5
	dismissiveScore = 0.5
)

// defaultNonAnswerPatterns backs relevance's own dismissive check when
// the analyzer is used standalone, outside the aggregator pipeline.
var defaultNonAnswerPatterns = []string{
	"i don't know", "i dont know", "idk", "no idea",
	"not sure", "dunno", "pass", "skip", "no comment",
}

// RelevanceScore computes the fraction of keyword stems present in the
// answer and maps it onto [0,10]. Matching is case-insensitive over
// stemmed tokens with a substring fallback for multi-word keywords.
// Pure function: safe for concurrent use.
func RelevanceScore(answer string, keywords []string) float64 {
	if IsNonAnswer(answer, defaultNonAnswerPatterns) {
		return dismissiveScore
	}
	if len(keywords) == 0 {
		// Nothing to match against; the floor applies.
		return relevanceFloor
	}

	stems := make(map[string]struct{})
	for _, tok := range Tokenize(answer) {
		stems[stem(tok)] = struct{}{}
	}
	lowered := strings.ToLower(answer)

	matched := 0
	for _, kw := range keywords {
		if keywordMatches(kw, stems, lowered) {
			matched++
		}
	}

	fraction := float64(matched) / float64(len(keywords))
	return Clamp10(relevanceFloor + relevanceSpan*fraction)
}

func keywordMatches(keyword string, answerStems map[string]struct{}, loweredAnswer string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return false
	}
	// Multi-word keywords match as substrings.
	if strings.ContainsRune(kw, ' ') {
		return strings.Contains(loweredAnswer, kw)
	}
	if _, ok := answerStems[stem(kw)]; ok {
		return true
	}
	return strings.Contains(loweredAnswer, kw)
}

// stem reduces a token to its English stem. Stemming failures fall back
// to the raw token: messy input lowers match quality, never errors.
func stem(word string) string {
	s, err := snowball.Stem(word, "english", true)
	if err != nil || s == "" {
		return word
	}
	return s
}
