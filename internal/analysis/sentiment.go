package analysis

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// negativeToneThreshold marks answers whose tone is negative enough to
// flag in feedback. Sentiment is a secondary signal only: it nudges
// clarity and feedback text, never the overall score directly.
const negativeToneThreshold = -0.4

// SentimentScore returns the VADER compound polarity of text in [-1,1].
// Pure function over the fixed built-in lexicon.
func SentimentScore(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	return sentitext.PolarityScore(parsed).Compound
}
