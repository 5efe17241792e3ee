package dashscope

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keeper-labs/keeper-cli/internal/core/ports/driven"
)

func newTestLLM(t *testing.T, url string) *LLMService {
	t.Helper()
	svc, err := NewLLMService(Config{APIKey: "test-key", BaseURL: url})
	require.NoError(t, err)
	return svc
}

func completionServer(t *testing.T, content string, lastReq *generationRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(lastReq))

		fmt.Fprintf(w, `{"output":{"choices":[{"message":{"content":%q},"finish_reason":"stop"}]},"usage":{"total_tokens":12}}`, content)
	}))
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	var gotReq generationRequest
	server := completionServer(t, "hello there", &gotReq)
	defer server.Close()

	svc := newTestLLM(t, server.URL)

	out, err := svc.Generate(context.Background(), "say hello", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)

	require.Len(t, gotReq.Input.Messages, 1)
	assert.Equal(t, "user", gotReq.Input.Messages[0].Role)
	assert.Equal(t, "say hello", gotReq.Input.Messages[0].Content)
	assert.Equal(t, "message", gotReq.Parameters.ResultFormat)
}

func TestSummarise_UsesFixedInstruction(t *testing.T) {
	var gotReq generationRequest
	server := completionServer(t, "a short summary", &gotReq)
	defer server.Close()

	svc := newTestLLM(t, server.URL)

	summary, err := svc.Summarise(context.Background(), "long document body")
	require.NoError(t, err)
	assert.Equal(t, "a short summary", summary)

	require.Len(t, gotReq.Input.Messages, 1)
	assert.Contains(t, gotReq.Input.Messages[0].Content, "concise summary")
	assert.Contains(t, gotReq.Input.Messages[0].Content, "long document body")
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"code":"Throttling","message":"rate exceeded"}`)
	}))
	defer server.Close()

	svc := newTestLLM(t, server.URL)

	_, err := svc.Generate(context.Background(), "x", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Throttling")
}

func TestGenerate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"output":{"choices":[]}}`)
	}))
	defer server.Close()

	svc := newTestLLM(t, server.URL)

	_, err := svc.Generate(context.Background(), "x", driven.GenerateOptions{})
	assert.Error(t, err)
}
