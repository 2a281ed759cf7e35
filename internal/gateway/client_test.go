package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/config"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(config.NotificationConfig{GatewayURL: server.URL, TimeoutSeconds: 2})
	return client, server
}

func TestClientSend(t *testing.T) {
	var got SendRequest
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "sent"})
	})
	defer server.Close()

	result, err := client.Send(context.Background(), "919876543210", "hello")
	require.NoError(t, err)
	assert.Equal(t, "sent", result["status"])
	assert.Equal(t, "919876543210", got.PhoneNumber)
	assert.Equal(t, "hello", got.Message)
}

func TestClientStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"connected": true})
	})
	defer server.Close()

	result, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, result["connected"])
}

func TestClientGatewayError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "session expired", http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.QR(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "session expired")
}

func TestClientBadJSON(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	defer server.Close()

	_, err := client.Status(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode gateway response")
}
