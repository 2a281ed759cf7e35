// Package gateway talks to the external WhatsApp bridge process that relays
// messages to and from customers. The bridge owns the session; this client
// only proxies sends and connection status.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spec-kit/coffee-passport/internal/config"
)

// Client is an HTTP client for the WhatsApp gateway.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a gateway client from configuration.
func NewClient(cfg config.NotificationConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.GatewayURL, "/"),
		http:    &http.Client{Timeout: cfg.GatewayTimeout()},
	}
}

// SendRequest is the outbound message payload.
type SendRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

// Send delivers a message to a phone number through the gateway.
func (c *Client) Send(ctx context.Context, phoneNumber, message string) (map[string]any, error) {
	body, err := json.Marshal(SendRequest{PhoneNumber: phoneNumber, Message: message})
	if err != nil {
		return nil, err
	}
	return c.post(ctx, "/send", body)
}

// QR fetches the current pairing QR code from the gateway.
func (c *Client) QR(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/qr")
}

// Status fetches the gateway connection status.
func (c *Client) Status(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/status")
}

func (c *Client) post(ctx context.Context, path string, body []byte) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (map[string]any, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var result map[string]any
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return result, nil
}
