package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const (
	// DefaultEmbedModel is the default embedding model to use
	DefaultEmbedModel = "text-embedding-3-small"
	// DefaultEmbedBaseURL is the default OpenAI API base URL
	DefaultEmbedBaseURL = "https://api.openai.com/v1"
	// DefaultEmbedDimensions is the reduced vector size requested from
	// the embeddings API
	DefaultEmbedDimensions = 384
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 60 * time.Second
)

// OpenAIProvider implements Provider using OpenAI's embeddings API
type OpenAIProvider struct {
	client     openai.Client
	model      openai.EmbeddingModel
	dimensions int
	logger     *zap.Logger
	debugMode  bool
}

// NewOpenAIProvider creates a new OpenAI embedding provider
func NewOpenAIProvider(apiKey string, model string, dimensions int) *OpenAIProvider {
	return NewOpenAIProviderWithLogger(apiKey, DefaultEmbedBaseURL, model, dimensions, nil, false)
}

// NewOpenAIProviderWithLogger creates a new OpenAI embedding provider with
// logger support
func NewOpenAIProviderWithLogger(apiKey string, baseURL string, model string, dimensions int, logger *zap.Logger, debugMode bool) *OpenAIProvider {
	if model == "" {
		model = DefaultEmbedModel
	}
	if baseURL == "" {
		baseURL = DefaultEmbedBaseURL
	}
	if dimensions <= 0 {
		dimensions = DefaultEmbedDimensions
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{
		client:     client,
		model:      openai.EmbeddingModel(model),
		dimensions: dimensions,
		logger:     logger,
		debugMode:  debugMode,
	}
}

// Dimensions returns the configured vector dimension
func (p *OpenAIProvider) Dimensions() int {
	return p.dimensions
}

// Embed embeds the given texts, returning one vector per input in input
// order. A provider/API failure aborts the whole batch.
func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if p.debugMode && p.logger != nil {
		p.logger.Debug("embedding_request",
			zap.Int("inputs", len(texts)),
			zap.String("model", string(p.model)),
			zap.Int("dimensions", p.dimensions),
		)
	}

	start := time.Now()
	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:      p.model,
		Dimensions: openai.Int(int64(p.dimensions)),
	})
	if err != nil {
		if p.logger != nil {
			p.logger.Error("embedding_request_failed",
				zap.Int("inputs", len(texts)),
				zap.Error(err),
			)
		}
		return nil, &RequestError{Err: err}
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response count mismatch: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float64, len(texts))
	for _, d := range resp.Data {
		i := int(d.Index)
		if i < 0 || i >= len(texts) {
			return nil, fmt.Errorf("embedding response index out of range: %d", i)
		}
		vec := make([]float64, len(d.Embedding))
		copy(vec, d.Embedding)
		vectors[i] = vec
	}

	if p.debugMode && p.logger != nil {
		p.logger.Debug("embedding_response",
			zap.Int("vectors", len(vectors)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}

	return vectors, nil
}
