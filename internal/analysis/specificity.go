package analysis

import (
	"strings"
	"unicode"
)

// examplePhrases introduce concrete illustrations; their presence is
// one of the marker classes counted toward completeness.
var examplePhrases = []string{
	"for example", "for instance", "such as", "e.g.", "in my experience",
	"when i", "one time", "in one case", "specifically",
}

const (
	specificityBase   = 1.0 // non-empty answers start above zero
	markerClassWeight = 2.0
	maxMarkerClasses  = 3
	diversityWeight   = 3.0
)

// SpecificityScore detects concrete markers (numbers, example phrases,
// named entities) and lexical diversity, mapping them onto a
// completeness contribution in [0,10]. Adding detail markers to an
// answer never lowers its marker contribution. Pure function.
func SpecificityScore(answer string) float64 {
	tokens := Tokenize(answer)
	if len(tokens) == 0 {
		return 0
	}

	classes := 0
	if containsNumber(answer) {
		classes++
	}
	if containsExamplePhrase(answer) {
		classes++
	}
	if containsNamedEntity(answer) {
		classes++
	}
	if classes > maxMarkerClasses {
		classes = maxMarkerClasses
	}

	distinct := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		distinct[t] = struct{}{}
	}
	diversity := float64(len(distinct)) / float64(len(tokens))

	return Clamp10(specificityBase + markerClassWeight*float64(classes) + diversityWeight*diversity)
}

func containsNumber(text string) bool {
	for _, r := range text {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsExamplePhrase(text string) bool {
	lowered := strings.ToLower(text)
	for _, p := range examplePhrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

// containsNamedEntity looks for capitalized words that are not
// sentence-initial, a cheap proxy for proper nouns.
func containsNamedEntity(text string) bool {
	for _, sentence := range splitSentences(text) {
		words := strings.Fields(sentence)
		for i, w := range words {
			if i == 0 {
				continue
			}
			r := []rune(w)[0]
			if unicode.IsUpper(r) && w != "I" && !strings.HasPrefix(w, "I'") {
				return true
			}
		}
	}
	return false
}
