package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-reporter/pkg/config"
)

func TestGroqComplete(t *testing.T) {
	var gotAuth string
	var gotReq ChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"executive_summary\":\"ok\"}"}}]}`))
	}))
	defer server.Close()

	client := NewGroqClient(&config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "llama-3.3-70b-versatile",
	})

	content, err := client.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "llama-3.3-70b-versatile", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user prompt", gotReq.Messages[1].Content)
	assert.Equal(t, map[string]string{"type": "json_object"}, gotReq.ResponseFormat)

	assert.JSONEq(t, `{"executive_summary":"ok"}`, content)
}

func TestGroqCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "k", BaseURL: server.URL})
	_, err := client.Complete(context.Background(), "s", "u")

	assert.Error(t, err)
}

func TestGroqPingRequiresAPIKey(t *testing.T) {
	client := NewGroqClient(&config.GroqConfig{BaseURL: "http://localhost:9"})

	assert.Error(t, client.Ping(context.Background()))
}
