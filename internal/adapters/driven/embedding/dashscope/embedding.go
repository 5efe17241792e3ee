// Package dashscope provides an embedding service adapter for the
// DashScope text-embedding API.
//
// The API caps the number of texts per request, so document embedding
// submits fixed-size batches and stitches the per-batch results back
// into one ordered list. A failed batch drops its texts with a warning
// instead of failing the call; the result reports which input indices
// produced no vector so callers can treat the outcome as a partial
// success.
package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/keeper-labs/keeper-cli/internal/core/domain"
	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
	"github.com/keeper-labs/keeper-cli/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://dashscope.aliyuncs.com/api/v1"
	DefaultModel   = "text-embedding-v2"
	DefaultTimeout = 60 * time.Second

	// MaxBatchSize is the API's hard cap on texts per request.
	MaxBatchSize = 25

	// DefaultRequestRate is the proactive client-side throttle in
	// requests per second.
	DefaultRequestRate = 5
)

// Embedding intents. Stored content and search input are encoded
// differently by the model and must not be mixed.
const (
	textTypeDocument = "document"
	textTypeQuery    = "query"
)

// Config holds configuration for the DashScope embedding service.
// Credentials are injected here at construction; there is no ambient
// process-wide API key.
type Config struct {
	// APIKey is the DashScope API key (required).
	APIKey string

	// BaseURL is the API base URL (default: DashScope public endpoint).
	BaseURL string

	// Model is the embedding model to use (default: text-embedding-v2).
	Model string

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// BatchSize caps texts per request (default and maximum: 25).
	BatchSize int

	// RequestRate throttles outgoing requests per second (default: 5).
	RequestRate float64
}

// EmbeddingService generates embeddings using the DashScope API.
type EmbeddingService struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	model     string
	batchSize int
	limiter   *rate.Limiter
}

// embeddingRequest is the DashScope API request format.
type embeddingRequest struct {
	Model string `json:"model"`
	Input struct {
		Texts []string `json:"texts"`
	} `json:"input"`
	Parameters struct {
		TextType string `json:"text_type"`
	} `json:"parameters"`
}

// embeddingResponse is the DashScope API response format.
type embeddingResponse struct {
	Output struct {
		Embeddings []struct {
			Embedding []float64 `json:"embedding"`
			TextIndex int       `json:"text_index"`
		} `json:"embeddings"`
	} `json:"output"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewEmbeddingService creates a new DashScope embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("dashscope: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > MaxBatchSize {
		cfg.BatchSize = MaxBatchSize
	}
	if cfg.RequestRate <= 0 {
		cfg.RequestRate = DefaultRequestRate
	}

	return &EmbeddingService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		batchSize: cfg.BatchSize,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestRate), 1),
	}, nil
}

// EmbedDocuments embeds texts with document intent.
// Inputs are submitted in batches of at most the configured batch size;
// each batch succeeds or fails independently.
func (s *EmbeddingService) EmbedDocuments(ctx context.Context, texts []string) (*driven.EmbedResult, error) {
	result := &driven.EmbedResult{}
	if len(texts) == 0 {
		return result, nil
	}

	for start := 0; start < len(texts); start += s.batchSize {
		end := start + s.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		vectors, tokens, err := s.embedBatch(ctx, batch, textTypeDocument)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("embedding batch [%d:%d] failed, dropping %d texts: %v",
				start, end, len(batch), err)
			for i := start; i < end; i++ {
				result.Failed = append(result.Failed, i)
			}
			continue
		}

		result.Vectors = append(result.Vectors, vectors...)
		result.TotalTokens += tokens
	}

	logger.Debug("embedded %d/%d texts (%d tokens)",
		len(result.Vectors), len(texts), result.TotalTokens)
	return result, nil
}

// EmbedQuery embeds a single text with query intent.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, _, err := s.embedBatch(ctx, []string{text}, textTypeQuery)
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, domain.ErrNoEmbeddings
	}
	return vectors[0], nil
}

// embedBatch submits one batch to the API and returns its vectors in
// input order together with the token usage.
func (s *EmbeddingService) embedBatch(ctx context.Context, texts []string, textType string) ([][]float32, int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	var reqBody embeddingRequest
	reqBody.Model = s.model
	reqBody.Input.Texts = texts
	reqBody.Parameters.TextType = textType

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/services/embeddings/text-embedding/text-embedding",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	var embedResp embeddingResponse
	if err := json.Unmarshal(body, &embedResp); err != nil {
		return nil, 0, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if embedResp.Message != "" {
			return nil, 0, fmt.Errorf("dashscope error (status %d, code %s): %s",
				resp.StatusCode, embedResp.Code, embedResp.Message)
		}
		return nil, 0, fmt.Errorf("dashscope error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(embedResp.Output.Embeddings) != len(texts) {
		return nil, 0, fmt.Errorf("dashscope returned %d embeddings for %d texts",
			len(embedResp.Output.Embeddings), len(texts))
	}

	// Order by text_index; the API does not guarantee response order.
	entries := embedResp.Output.Embeddings
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].TextIndex < entries[j].TextIndex
	})

	vectors := make([][]float32, len(entries))
	for i, entry := range entries {
		vector := make([]float32, len(entry.Embedding))
		for j, v := range entry.Embedding {
			vector[j] = float32(v)
		}
		vectors[i] = vector
	}

	return vectors, embedResp.Usage.TotalTokens, nil
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by embedding a short probe text.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.EmbedQuery(ctx, "ping"); err != nil {
		return fmt.Errorf("dashscope: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
