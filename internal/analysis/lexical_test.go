package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelevanceScore_AllKeywordsMatched(t *testing.T) {
	score := RelevanceScore(
		"I have used Docker and Kubernetes to deploy services in production.",
		[]string{"docker", "kubernetes", "deploy"},
	)
	require.Equal(t, 10.0, score)
}

func TestRelevanceScore_StemmedMatch(t *testing.T) {
	// "deploying" and "caches" should match the keyword stems.
	score := RelevanceScore(
		"Deploying with warm caches avoids cold starts.",
		[]string{"deploy", "cache"},
	)
	require.Equal(t, 10.0, score)
}

func TestRelevanceScore_FloorForNonEmptyAnswers(t *testing.T) {
	// Keyword absence never implies zero for a real answer.
	score := RelevanceScore(
		"This is a thoughtful answer about something else entirely.",
		[]string{"docker", "kubernetes"},
	)
	require.Equal(t, relevanceFloor, score)
}

func TestRelevanceScore_DismissiveForcedNearZero(t *testing.T) {
	for _, answer := range []string{"I don't know", "idk", "no idea", "  "} {
		score := RelevanceScore(answer, []string{"docker"})
		require.LessOrEqual(t, score, 1.0, "answer %q", answer)
	}
}

func TestRelevanceScore_PartialMatch(t *testing.T) {
	score := RelevanceScore(
		"We put a cache in front of the API to cut latency.",
		[]string{"cache", "latency", "invalidation", "stale"},
	)
	// 2 of 4 keywords: floor + half the span.
	require.InDelta(t, relevanceFloor+relevanceSpan*0.5, score, 1e-9)
}

func TestReadabilityScore_IdealBand(t *testing.T) {
	score := ReadabilityScore(
		"We shipped the feature in three separate stages over the quarter. Each stage had its own rollout plan and monitoring confirmed stable results.",
	)
	require.Equal(t, 10.0, score)
}

func TestReadabilityScore_PenalizesFragments(t *testing.T) {
	fragment := ReadabilityScore("Yes.")
	ideal := ReadabilityScore("We agreed on the approach after a short discussion with the team.")
	require.Less(t, fragment, ideal)
}

func TestReadabilityScore_PenalizesRunOns(t *testing.T) {
	runOn := ReadabilityScore(
		"I think the main thing about this project was that we had to move quickly because the deadline was close and the team was small and we also had to keep the old system running while building the new one and nobody really knew both systems well",
	)
	ideal := ReadabilityScore("We had a tight deadline and a small team. We kept the old system running while building the new one.")
	require.Less(t, runOn, ideal)
}

func TestReadabilityScore_EmptyIsZero(t *testing.T) {
	require.Equal(t, 0.0, ReadabilityScore("   "))
}

func TestSpecificityScore_MarkersRaiseScore(t *testing.T) {
	plain := SpecificityScore("I would talk to the customer and listen to their concerns.")
	detailed := SpecificityScore(
		"I would talk to the customer and listen to their concerns. For example, last quarter I kept 3 accounts by offering a temporary discount.",
	)
	require.Greater(t, detailed, plain)
}

func TestSpecificityScore_SupersetNeverScoresLower(t *testing.T) {
	base := "We improved the onboarding flow for new engineers."
	superset := base + " For example, we cut the setup time from 5 days to 1 by scripting the environment."
	require.GreaterOrEqual(t, SpecificityScore(superset), SpecificityScore(base))
}

func TestSpecificityScore_Bounds(t *testing.T) {
	for _, answer := range []string{
		"",
		"word",
		"For example, in 2023 we migrated 40 services to Kubernetes with zero downtime, such as the billing API.",
	} {
		score := SpecificityScore(answer)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 10.0)
	}
}

func TestSentimentScore_Polarity(t *testing.T) {
	positive := SentimentScore("I love collaborating with my team, it is a great experience.")
	negative := SentimentScore("I hate this, it was a terrible, awful failure.")
	require.Greater(t, positive, 0.0)
	require.Less(t, negative, 0.0)
	require.Equal(t, 0.0, SentimentScore("  "))
}

func TestIsNonAnswer(t *testing.T) {
	patterns := defaultNonAnswerPatterns
	require.True(t, IsNonAnswer("", patterns))
	require.True(t, IsNonAnswer("   ", patterns))
	require.True(t, IsNonAnswer("I don't know", patterns))
	require.True(t, IsNonAnswer("No idea.", patterns))
	require.True(t, IsNonAnswer("  IDK  ", patterns))
	require.False(t, IsNonAnswer("I know a little about this.", patterns))
}

func TestClamp10(t *testing.T) {
	require.Equal(t, 0.0, Clamp10(-2))
	require.Equal(t, 10.0, Clamp10(14.2))
	require.Equal(t, 5.5, Clamp10(5.5))
}
