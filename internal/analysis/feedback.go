package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/intervue/intervue-backend/internal/model"
)

// maxReportPhrases caps the aggregated strength/improvement lists.
const maxReportPhrases = 5

// FeedbackReport is the FeedbackGenerator: a pure function over the
// per-question results of a completed session. It fills the aggregate
// fields of a FinalReport; identity fields (interview, user, category,
// completion time) belong to the caller. Calling it twice on the same
// results yields identical output.
func FeedbackReport(results []model.QuestionResult) model.FinalReport {
	var report model.FinalReport
	if len(results) == 0 {
		report.Strengths = []string{}
		report.Improvements = []string{}
		report.Summary = summaryText(0)
		return report
	}

	n := float64(len(results))
	for _, r := range results {
		report.OverallScore += r.Overall
		report.AvgRelevance += r.Relevance
		report.AvgCompleteness += r.Completeness
		report.AvgClarity += r.Clarity
		report.AvgAccuracy += r.TechnicalAccuracy
	}
	report.OverallScore = round1(report.OverallScore / n)
	report.AvgRelevance = round1(report.AvgRelevance / n)
	report.AvgCompleteness = round1(report.AvgCompleteness / n)
	report.AvgClarity = round1(report.AvgClarity / n)
	report.AvgAccuracy = round1(report.AvgAccuracy / n)

	report.Strengths = topPhrases(results, func(r model.QuestionResult) []string { return r.Strengths })
	report.Improvements = topPhrases(results, func(r model.QuestionResult) []string { return r.Improvements })
	report.Summary = summaryText(report.OverallScore)

	return report
}

// topPhrases unions and de-duplicates phrases across results,
// preferring the most frequently recurring ones. Ties break by first
// occurrence, so the selection is deterministic.
func topPhrases(results []model.QuestionResult, pick func(model.QuestionResult) []string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, r := range results {
		for _, phrase := range pick(r) {
			if _, ok := counts[phrase]; !ok {
				firstSeen[phrase] = order
				order++
			}
			counts[phrase]++
		}
	}

	phrases := make([]string, 0, len(counts))
	for p := range counts {
		phrases = append(phrases, p)
	}
	sort.Slice(phrases, func(i, j int) bool {
		if counts[phrases[i]] != counts[phrases[j]] {
			return counts[phrases[i]] > counts[phrases[j]]
		}
		return firstSeen[phrases[i]] < firstSeen[phrases[j]]
	})

	if len(phrases) > maxReportPhrases {
		phrases = phrases[:maxReportPhrases]
	}
	return phrases
}

// summaryText composes the report summary sentence from the overall
// average and its quality band.
func summaryText(overall float64) string {
	var band string
	switch {
	case overall >= 8.5:
		band = "an outstanding performance. You are well prepared for the real interview"
	case overall >= 7.0:
		band = "a strong performance. Polish the weaker areas below and you will be in great shape"
	case overall >= 5.0:
		band = "a solid foundation. Focused practice on the areas below will lift your score quickly"
	case overall >= 3.5:
		band = "room to grow. Work through the improvement areas below and practice answering out loud"
	default:
		band = "an early stage of preparation. Start by attempting every question with a few full sentences"
	}
	return fmt.Sprintf("You scored %.1f out of 10 overall, %s.", overall, band)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
