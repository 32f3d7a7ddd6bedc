package model

// QualityLabel is the coarse classification of one answer's adequacy.
type QualityLabel string

const (
	QualityNonAnswer QualityLabel = "non_answer"
	QualityVeryShort QualityLabel = "very_short"
	QualityShort     QualityLabel = "short"
	QualityAdequate  QualityLabel = "adequate"
	QualityGood      QualityLabel = "good"
	QualityExcellent QualityLabel = "excellent"
)

// QuestionResult is one evaluated answer. Created once by the
// aggregator, immutable thereafter, owned by its parent session.
type QuestionResult struct {
	QuestionID        string       `json:"question_id"`
	AnswerText        string       `json:"answer_text"`
	Relevance         float64      `json:"relevance"`
	Completeness      float64      `json:"completeness"`
	Clarity           float64      `json:"clarity"`
	TechnicalAccuracy float64      `json:"technical_accuracy"`
	Overall           float64      `json:"overall_score"`
	QualityLabel      QualityLabel `json:"quality_label"`
	Strengths         []string     `json:"strengths"`
	Improvements      []string     `json:"improvements"`
}
