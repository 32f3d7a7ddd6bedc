package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrEmbeddingUnavailable marks infrastructure faults from the
// embedding backend. Accuracy is a user-facing dimension, so the scorer
// fails loudly instead of silently returning a default score.
var ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

// Embedder turns a text into a dense vector. Implementations are
// created once at startup and must be safe for concurrent calls.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SimilarityScorer derives a technical-accuracy score from the cosine
// similarity of two texts' embeddings. Stateless and safe for
// concurrent use.
type SimilarityScorer struct {
	embedder Embedder
}

// NewSimilarityScorer creates a SimilarityScorer on top of an embedder.
func NewSimilarityScorer(embedder Embedder) *SimilarityScorer {
	return &SimilarityScorer{embedder: embedder}
}

// Score embeds both texts and rescales their cosine similarity to
// [0,10]: similarity <= 0 maps to 0 and similarity 1 maps to 10, via a
// linear rescale of the clamped [0,1] range.
func (s *SimilarityScorer) Score(ctx context.Context, reference, candidate string) (float64, error) {
	refVec, err := s.embedder.Embed(ctx, reference)
	if err != nil {
		return 0, fmt.Errorf("%w: embed reference: %v", ErrEmbeddingUnavailable, err)
	}
	candVec, err := s.embedder.Embed(ctx, candidate)
	if err != nil {
		return 0, fmt.Errorf("%w: embed candidate: %v", ErrEmbeddingUnavailable, err)
	}

	return Clamp10(clamp01(Cosine(refVec, candVec)) * 10), nil
}

// Cosine computes the cosine similarity of two vectors in [-1,1].
// Mismatched or zero vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
