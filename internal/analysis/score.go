// Package analysis is the response-analysis engine: it turns one
// submitted answer into a multi-dimensional score with qualitative
// feedback, and aggregates per-question results into a final report.
package analysis

import (
	"strings"
	"unicode"
)

// Clamp10 bounds a score to the [0,10] scale. Every score production
// site goes through this helper so the bound holds everywhere.
func Clamp10(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 10 {
		return 10
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Tokenize lowercases text and splits it into word tokens, dropping
// punctuation. Apostrophes are kept so contractions stay whole.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
}

// WordCount counts word tokens in text.
func WordCount(text string) int {
	return len(Tokenize(text))
}

// IsNonAnswer reports whether text is empty after trimming or matches
// one of the dismissive patterns ("i don't know" and close variants).
func IsNonAnswer(text string, patterns []string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.TrimRight(t, ".!? ")
	if t == "" {
		return true
	}
	for _, p := range patterns {
		if t == p {
			return true
		}
	}
	return false
}

// Feedback phrase bank. Phrase selection is a deterministic lookup
// keyed by which dimensions scored high or low, so identical scores
// always produce identical feedback text.
const (
	strengthRelevance    = "Directly addressed the question with relevant points."
	strengthCompleteness = "Backed up claims with concrete details and examples."
	strengthClarity      = "Clear, well-paced sentences that are easy to follow."
	strengthAccuracy     = "Demonstrated solid technical understanding of the subject."

	improveRelevance    = "Address the question more directly and use its key terms."
	improveCompleteness = "Add concrete examples, numbers, or specifics to support your points."
	improveClarity      = "Break long sentences up and aim for a steadier pace."
	improveAccuracy     = "Review the core concepts behind this topic before the real interview."
	improveTone         = "Frame setbacks more positively; avoid overly negative or hedging language."
	improveTooShort     = "Expand your answers: even a few extra sentences of detail help."
	improveTooLong      = "Tighten your answers: trim repetition and filler."
	improveNonAnswer    = "Attempt every question; a partial answer always scores better than passing."
)

const (
	strengthThreshold = 7.5
	improveThreshold  = 5.0
)
