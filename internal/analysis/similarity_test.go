package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	require.InDelta(t, 1.0, Cosine([]float32{1, 0}, []float32{2, 0}), 1e-6)
	require.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-6)
	require.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	require.Equal(t, 0.0, Cosine(nil, []float32{1}))
	require.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 0}))
}

func TestSimilarityScorer_RescalesToTen(t *testing.T) {
	emb := &stubEmbedder{
		vectors: map[string][]float32{
			"reference":  {1, 0},
			"identical":  {3, 0},
			"orthogonal": {0, 1},
			"opposite":   {-1, 0},
		},
		fallback: []float32{1, 0},
	}
	scorer := NewSimilarityScorer(emb)

	score, err := scorer.Score(context.Background(), "reference", "identical")
	require.NoError(t, err)
	require.InDelta(t, 10.0, score, 1e-6)

	score, err = scorer.Score(context.Background(), "reference", "orthogonal")
	require.NoError(t, err)
	require.InDelta(t, 0.0, score, 1e-6)

	// Negative cosine clamps to zero rather than going below the scale.
	score, err = scorer.Score(context.Background(), "reference", "opposite")
	require.NoError(t, err)
	require.Equal(t, 0.0, score)
}

func TestSimilarityScorer_WrapsEmbedderErrors(t *testing.T) {
	scorer := NewSimilarityScorer(failingEmbedder{})
	_, err := scorer.Score(context.Background(), "reference", "candidate")
	require.ErrorIs(t, err, ErrEmbeddingUnavailable)
}
