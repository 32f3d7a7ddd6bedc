package analysis

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/intervue/intervue-backend/internal/config"
	"github.com/intervue/intervue-backend/internal/model"
)

const nonAnswerScore = 0.5

// Analyzer combines the lexical analyzers, the sentiment signal and the
// embedding-similarity scorer into one QuestionResult per answer.
// Stateless apart from its configuration; safe for concurrent use.
type Analyzer struct {
	policy     *config.ScoringPolicy
	similarity *SimilarityScorer
	log        zerolog.Logger
}

// NewAnalyzer creates the aggregator. The embedder is shared across all
// sessions; it is only invoked for answers that pass non-answer
// detection.
func NewAnalyzer(policy *config.ScoringPolicy, embedder Embedder, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		policy:     policy,
		similarity: NewSimilarityScorer(embedder),
		log:        log.With().Str("component", "analyzer").Logger(),
	}
}

// Analyze evaluates one answer against its question. categoryKeywords
// is the fallback keyword set used when the question declares none.
// Lexical faults on messy text normalize into the lowest band; only an
// embedding failure propagates as an error, leaving no partial result.
func (a *Analyzer) Analyze(ctx context.Context, q model.Question, categoryKeywords []string, answer string) (model.QuestionResult, error) {
	trimmed := strings.TrimSpace(answer)

	// Non-answer short-circuit. Skips the expensive similarity call.
	if IsNonAnswer(trimmed, a.policy.NonAnswers) {
		return model.QuestionResult{
			QuestionID:        q.ID,
			AnswerText:        answer,
			Relevance:         nonAnswerScore,
			Completeness:      nonAnswerScore,
			Clarity:           nonAnswerScore,
			TechnicalAccuracy: nonAnswerScore,
			Overall:           nonAnswerScore,
			QualityLabel:      model.QualityNonAnswer,
			Strengths:         []string{},
			Improvements:      []string{improveNonAnswer},
		}, nil
	}

	keywords := q.Keywords
	if len(keywords) == 0 {
		keywords = categoryKeywords
	}

	relevance := RelevanceScore(trimmed, keywords)
	clarity := ReadabilityScore(trimmed)
	completeness := SpecificityScore(trimmed)
	sentiment := SentimentScore(trimmed)

	negativeTone := sentiment < negativeToneThreshold
	if negativeTone {
		clarity = Clamp10(clarity - 0.5)
	}

	accuracy, err := a.similarity.Score(ctx, referenceText(q, keywords), trimmed)
	if err != nil {
		return model.QuestionResult{}, err
	}

	weights := a.policy.Weights[q.Category]
	overall := weights.Relevance*relevance +
		weights.Completeness*completeness +
		weights.Clarity*clarity +
		weights.Accuracy*accuracy

	wordCount := len(Tokenize(trimmed))
	overall = Clamp10(overall + a.lengthAdjustment(wordCount))

	result := model.QuestionResult{
		QuestionID:        q.ID,
		AnswerText:        answer,
		Relevance:         Clamp10(relevance),
		Completeness:      Clamp10(completeness),
		Clarity:           Clamp10(clarity),
		TechnicalAccuracy: Clamp10(accuracy),
		Overall:           overall,
		QualityLabel:      classify(overall),
	}
	result.Strengths, result.Improvements = a.feedbackPhrases(result, wordCount, negativeTone)

	a.log.Debug().
		Str("question_id", q.ID).
		Int("words", wordCount).
		Float64("overall", result.Overall).
		Str("label", string(result.QualityLabel)).
		Msg("Answer analyzed")

	return result, nil
}

// lengthAdjustment implements the supportive-scoring length policy:
// a small bonus inside the reasonable band, penalties for fragments
// and for verbosity. Applied before the final clamp.
func (a *Analyzer) lengthAdjustment(wordCount int) float64 {
	l := a.policy.Length
	switch {
	case wordCount < l.ShortBelow:
		return -l.ShortPenalty
	case wordCount >= l.IdealMin && wordCount <= l.IdealMax:
		return l.IdealBonus
	case wordCount > l.VerboseAbove:
		return -l.VerbosePenalty
	default:
		return 0
	}
}

// referenceText picks the comparison text for the accuracy dimension:
// the curated reference answer when the bank has one, otherwise the
// question text plus its keywords.
func referenceText(q model.Question, keywords []string) string {
	if q.ReferenceAnswer != "" {
		return q.ReferenceAnswer
	}
	if len(keywords) == 0 {
		return q.Text
	}
	return q.Text + " " + strings.Join(keywords, " ")
}

// classify maps an overall score onto its quality band. The non_answer
// label is only ever produced by the short-circuit path.
func classify(overall float64) model.QualityLabel {
	switch {
	case overall >= 8.5:
		return model.QualityExcellent
	case overall >= 7.0:
		return model.QualityGood
	case overall >= 5.0:
		return model.QualityAdequate
	case overall >= 3.5:
		return model.QualityShort
	default:
		return model.QualityVeryShort
	}
}

// feedbackPhrases selects strength and improvement phrases from the
// bank by which dimensions scored high or low. Deterministic for a
// given result: no randomness, stable ordering.
func (a *Analyzer) feedbackPhrases(r model.QuestionResult, wordCount int, negativeTone bool) (strengths, improvements []string) {
	strengths = []string{}
	improvements = []string{}

	dims := []struct {
		score    float64
		strength string
		improve  string
	}{
		{r.Relevance, strengthRelevance, improveRelevance},
		{r.Completeness, strengthCompleteness, improveCompleteness},
		{r.Clarity, strengthClarity, improveClarity},
		{r.TechnicalAccuracy, strengthAccuracy, improveAccuracy},
	}
	for _, d := range dims {
		switch {
		case d.score >= strengthThreshold:
			strengths = append(strengths, d.strength)
		case d.score < improveThreshold:
			improvements = append(improvements, d.improve)
		}
	}

	l := a.policy.Length
	if wordCount < l.ShortBelow {
		improvements = append(improvements, improveTooShort)
	} else if wordCount > l.VerboseAbove {
		improvements = append(improvements, improveTooLong)
	}
	if negativeTone {
		improvements = append(improvements, improveTone)
	}
	return strengths, improvements
}
