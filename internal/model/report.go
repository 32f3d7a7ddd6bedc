package model

import (
	"time"

	"github.com/google/uuid"
)

// FinalReport aggregates all question results of a completed session.
// Computed once when the last answer is accepted, immutable after.
type FinalReport struct {
	InterviewID     uuid.UUID `json:"interview_id"`
	UserID          string    `json:"user_id"`
	Category        Category  `json:"category"`
	OverallScore    float64   `json:"overall_score"`
	AvgRelevance    float64   `json:"avg_relevance"`
	AvgCompleteness float64   `json:"avg_completeness"`
	AvgClarity      float64   `json:"avg_clarity"`
	AvgAccuracy     float64   `json:"avg_technical_accuracy"`
	Strengths       []string  `json:"strength_analysis"`
	Improvements    []string  `json:"areas_for_improvement"`
	Summary         string    `json:"detailed_feedback"`
	CompletedAt     time.Time `json:"completed_at"`
}

// ReportEnvelope is the persistence queue payload: the completed
// report plus the raw per-question results behind it.
type ReportEnvelope struct {
	Report  FinalReport      `json:"report"`
	Results []QuestionResult `json:"results"`
}

// Breakdown returns the per-dimension averages as a map, mirroring the
// category_breakdown block of the report payload.
func (r *FinalReport) Breakdown() map[string]float64 {
	return map[string]float64{
		"relevance":          r.AvgRelevance,
		"completeness":       r.AvgCompleteness,
		"clarity":            r.AvgClarity,
		"technical_accuracy": r.AvgAccuracy,
	}
}
