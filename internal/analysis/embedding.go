package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder embeds texts through any OpenAI-compatible embeddings
// endpoint. The client is created once at startup and reused; it is
// safe for concurrent read-only inference calls.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewOpenAIEmbedder creates the embedder. baseURL may be empty for the
// default OpenAI endpoint, or point at a local compatible server.
func NewOpenAIEmbedder(apiKey, baseURL, model string, log zerolog.Logger) *OpenAIEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	e := &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log.With().Str("component", "embedder").Logger(),
	}
	e.log.Info().Str("model", model).Msg("Embedding client initialized")
	return e
}

// Embed returns the embedding vector for text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return resp.Data[0].Embedding, nil
}

// Model reports the configured embedding model name.
func (e *OpenAIEmbedder) Model() string { return e.model }
