package analysis

import "strings"

// Readability bands. Clarity is banded, not monotonic: both fragments
// and run-on prose score below answers inside the ideal bands.
const (
	idealSentenceMin = 8.0  // words per sentence
	idealSentenceMax = 22.0
	idealWordMin     = 3.5 // characters per word
	idealWordMax     = 7.0

	sentenceFalloff = 0.5 // per word outside the sentence band
	wordFalloff     = 2.0 // per character outside the word band
	bandFloor       = 2.0

	sentenceWeight = 0.7
	wordWeight     = 0.3
)

// ReadabilityScore maps average sentence length and average word length
// onto a clarity score in [0,10]. Pure function.
func ReadabilityScore(answer string) float64 {
	tokens := Tokenize(answer)
	if len(tokens) == 0 {
		return 0
	}

	sentences := splitSentences(answer)
	nSentences := len(sentences)
	if nSentences == 0 {
		nSentences = 1
	}

	avgSentence := float64(len(tokens)) / float64(nSentences)

	var chars int
	for _, t := range tokens {
		chars += len(t)
	}
	avgWord := float64(chars) / float64(len(tokens))

	sentenceBand := bandScore(avgSentence, idealSentenceMin, idealSentenceMax, sentenceFalloff)
	wordBand := bandScore(avgWord, idealWordMin, idealWordMax, wordFalloff)

	return Clamp10(sentenceWeight*sentenceBand + wordWeight*wordBand)
}

// bandScore gives 10 inside [lo,hi] and decays linearly outside, with a
// floor so degenerate text still lands in the lowest band rather than 0.
func bandScore(v, lo, hi, falloff float64) float64 {
	var dist float64
	switch {
	case v < lo:
		dist = lo - v
	case v > hi:
		dist = v - hi
	default:
		return 10
	}
	s := 10 - dist*falloff
	if s < bandFloor {
		return bandFloor
	}
	return s
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
