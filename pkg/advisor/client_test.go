package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "xin chào", req.Message)
		assert.Equal(t, "abc", req.SessionID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChatResponse{
			Response:  "Xin chào!",
			SessionID: "abc",
			Intent:    "greeting",
		})
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	resp, err := client.Chat(context.Background(), "abc", "xin chào")
	require.NoError(t, err)
	assert.Equal(t, "Xin chào!", resp.Response)
	assert.Equal(t, "abc", resp.SessionID)
	assert.Equal(t, "greeting", resp.Intent)
}

func TestChat_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "No message provided"})
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No message provided")
}

func TestChat_ServerUnreachable(t *testing.T) {
	client, err := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "", "xin chào")
	assert.Error(t, err)
}
