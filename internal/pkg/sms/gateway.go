package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrGatewayURLRequired is returned when the gateway base URL is missing.
var ErrGatewayURLRequired = errors.New("sms gateway url is required")

// HTTPGateway is a Sender that posts messages to a JSON SMS gateway.
type HTTPGateway struct {
	url    string
	from   string
	apiKey string
	client *http.Client
}

// HTTPGatewayConfig configures the HTTP gateway implementation.
type HTTPGatewayConfig struct {
	// URL is the gateway endpoint that accepts the send request.
	URL string
	// From is the sender ID attached to every message.
	From string
	// APIKey authenticates against the gateway.
	APIKey string
	// Timeout bounds a single send request.
	Timeout time.Duration
}

// NewHTTPGateway constructs an HTTP gateway sender.
func NewHTTPGateway(cfg HTTPGatewayConfig) (*HTTPGateway, error) {
	if cfg.URL == "" {
		return nil, ErrGatewayURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPGateway{
		url:    cfg.URL,
		from:   cfg.From,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}, nil
}

type gatewayRequest struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send posts the message to the gateway.
func (g *HTTPGateway) Send(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(gatewayRequest{From: g.from, To: to, Message: body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway responded %d", resp.StatusCode)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (g *HTTPGateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
