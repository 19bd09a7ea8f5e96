// Package client talks to the remote agent service: one streaming call that
// yields newline-delimited JSON events, plus feedback logging.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/westkevin12/lighthouse-agent/internal/domain"
	"github.com/westkevin12/lighthouse-agent/internal/logging"
)

const streamPath = "stream_messages"

// HTTPClient abstracts the HTTP transport for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client streams events from the agent service.
type Client struct {
	baseURL   string
	authToken string
	httpc     HTTPClient
	log       *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAuthToken sends a bearer token with every request.
func WithAuthToken(token string) Option {
	return func(c *Client) { c.authToken = token }
}

// WithHTTPClient replaces the transport. Tests use this.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) { c.httpc = h }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
		log:     logging.New("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint joins the base URL with a path segment.
func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	return u.JoinPath(path).String(), nil
}

// StreamMessages opens one streaming call. Events arrive on the returned
// channel in arrival order; a transport failure mid-stream is delivered as
// the final item's Err, and the channel is closed when the stream ends.
func (c *Client) StreamMessages(ctx context.Context, req domain.StreamRequest) (<-chan domain.StreamItem, error) {
	target, err := c.endpoint(streamPath)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if c.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("agent service error %d: %s", resp.StatusCode, string(msg))
	}

	items := make(chan domain.StreamItem, 16)
	go c.readStream(ctx, resp.Body, items)
	return items, nil
}

// readStream decodes newline-delimited JSON events off the response body.
// Each line is either an [event, metadata] pair or a bare event object.
// Unparseable lines are logged and skipped; a read failure is delivered as
// the terminal item. Cancelling ctx releases the goroutine even when the
// consumer has stopped receiving, so the body always gets closed.
func (c *Client) readStream(ctx context.Context, body io.ReadCloser, items chan<- domain.StreamItem) {
	defer close(items)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		event, meta, err := decodeLine(line)
		if err != nil {
			c.log.Warn("parse_event_failed", map[string]interface{}{"line": string(line)}, err)
			continue
		}
		select {
		case items <- domain.StreamItem{Event: event, Meta: meta}:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		select {
		case items <- domain.StreamItem{Err: fmt.Errorf("read stream: %w", err)}:
		case <-ctx.Done():
		}
	}
}

func decodeLine(line []byte) (domain.Event, map[string]any, error) {
	// Preferred wire shape: a two-element [event, metadata] array.
	var pair []json.RawMessage
	if err := json.Unmarshal(line, &pair); err == nil && len(pair) >= 1 {
		var event domain.Event
		if err := json.Unmarshal(pair[0], &event); err != nil {
			return domain.Event{}, nil, err
		}
		meta := map[string]any{}
		if len(pair) >= 2 {
			json.Unmarshal(pair[1], &meta)
		}
		return event, meta, nil
	}

	var event domain.Event
	if err := json.Unmarshal(line, &event); err != nil {
		return domain.Event{}, nil, err
	}
	return event, nil, nil
}
