// Package dashscope provides an LLM service adapter for the DashScope
// text-generation API, used to summarise documents at ingest time.
package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://dashscope.aliyuncs.com/api/v1"
	DefaultModel      = "qwen2.5-3b-instruct"
	DefaultLLMTimeout = 120 * time.Second
)

// summaryPrompt is the fixed summarisation instruction. The model's raw
// completion is used verbatim as the summary text.
const summaryPrompt = "Write a concise summary of the following text, " +
	"capturing its main points and key information. Aim for roughly 150 " +
	"characters, adjusting as the content requires:\n%s"

// Config holds configuration for the DashScope LLM service.
type Config struct {
	// APIKey is the DashScope API key (required).
	APIKey string

	// BaseURL is the API base URL (default: DashScope public endpoint).
	BaseURL string

	// Model is the generation model to use (default: qwen2.5-3b-instruct).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides text generation using the DashScope API.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// generationRequest is the DashScope text-generation request format.
type generationRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []generationMsg `json:"messages"`
	} `json:"input"`
	Parameters struct {
		ResultFormat string  `json:"result_format"`
		MaxTokens    int     `json:"max_tokens,omitempty"`
		Temperature  float64 `json:"temperature,omitempty"`
	} `json:"parameters"`
}

// generationMsg is the DashScope chat message format.
type generationMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// generationResponse is the DashScope text-generation response format.
type generationResponse struct {
	Output struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	} `json:"output"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewLLMService creates a new DashScope LLM service.
func NewLLMService(cfg Config) (*LLMService, error) {
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
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Generate produces a text completion from a single prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	var reqBody generationRequest
	reqBody.Model = s.model
	reqBody.Input.Messages = []generationMsg{
		{Role: "user", Content: prompt},
	}
	reqBody.Parameters.ResultFormat = "message"
	if opts.MaxTokens > 0 {
		reqBody.Parameters.MaxTokens = opts.MaxTokens
	}
	if opts.Temperature > 0 {
		reqBody.Parameters.Temperature = opts.Temperature
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/services/aigc/text-generation/generation",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var genResp generationResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if genResp.Message != "" {
			return "", fmt.Errorf("dashscope error (status %d, code %s): %s",
				resp.StatusCode, genResp.Code, genResp.Message)
		}
		return "", fmt.Errorf("dashscope error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(genResp.Output.Choices) == 0 {
		return "", fmt.Errorf("dashscope: no completion returned")
	}

	return genResp.Output.Choices[0].Message.Content, nil
}

// Summarise creates a concise summary of document content.
func (s *LLMService) Summarise(ctx context.Context, content string) (string, error) {
	return s.Generate(ctx, fmt.Sprintf(summaryPrompt, content), driven.GenerateOptions{})
}

// ModelName returns the name of the model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable with a minimal completion.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.Generate(ctx, "ping", driven.GenerateOptions{MaxTokens: 1})
	if err != nil {
		return fmt.Errorf("dashscope: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
