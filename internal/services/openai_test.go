package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimarket/haggle-engine/pkg/chat"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func TestNewOpenAIService(t *testing.T) {
	service := NewOpenAIService("test-api-key", "test-model", testLogger())

	assert.Equal(t, "test-api-key", service.apiKey)
	assert.Equal(t, "test-model", service.modelName)
	assert.NotNil(t, service.httpClient)
	assert.Equal(t, openAIBaseURL, service.baseURL)
}

func TestOpenAIService_InitModel(t *testing.T) {
	service := NewOpenAIService("test-api-key", "test-model", testLogger())
	assert.NoError(t, service.InitModel(context.Background(), "test-model"))
}

func TestOpenAIService_GenerateResponse(t *testing.T) {
	var gotReq openAIChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		resp := map[string]interface{}{
			"id": "chatcmpl-123",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{
					"role":    chat.RoleAssistant,
					"content": "I could do $425 for you.",
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	service := NewOpenAIService("test-api-key", "test-model", testLogger())
	service.baseURL = server.URL

	messages := []chat.Message{
		{Role: chat.RoleSystem, Content: "You are a vendor."},
		{Role: chat.RoleUser, Content: "how about $450?"},
	}

	reply, err := service.GenerateResponse(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "I could do $425 for you.", reply)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Len(t, gotReq.Messages, 2)
}

func TestOpenAIService_GenerateResponse_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit","message":"slow down"}}`))
	}))
	defer server.Close()

	service := NewOpenAIService("test-api-key", "test-model", testLogger())
	service.baseURL = server.URL

	_, err := service.GenerateResponse(context.Background(), []chat.Message{
		{Role: chat.RoleUser, Content: "hello"},
	})
	assert.Error(t, err)
}

func TestOpenAIService_GenerateResponse_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"chatcmpl-123","choices":[]}`))
	}))
	defer server.Close()

	service := NewOpenAIService("test-api-key", "test-model", testLogger())
	service.baseURL = server.URL

	_, err := service.GenerateResponse(context.Background(), []chat.Message{
		{Role: chat.RoleUser, Content: "hello"},
	})
	assert.Error(t, err)
}
