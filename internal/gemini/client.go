package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client sends generateContent requests to the Gemini REST API.
type Client struct {
	// baseURL is the models endpoint prefix,
	// e.g. "https://generativelanguage.googleapis.com/v1beta/models".
	baseURL string
	apiKey  string
	// httpClient carries the round-trip timeout for buffered requests.
	httpClient *http.Client
	// streamTransport is reused by streaming requests, which must not be
	// cut off by a whole-response timeout.
	streamTransport http.RoundTripper
}

// NewClient constructs a Client. apiKey may be empty; callers are expected to
// check Configured before issuing requests.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		streamTransport: transport,
	}
}

// Configured reports whether an API key is present. When false, every call
// would fail upstream, so handlers short-circuit with a configuration error.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

func (c *Client) endpoint(model, verb string) string {
	return fmt.Sprintf("%s/%s:%s?key=%s", c.baseURL, model, verb, url.QueryEscape(c.apiKey))
}

// GenerateContent sends a buffered generateContent request and returns the
// parsed response.
func (c *Client) GenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (*GenerateContentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(model, "generateContent"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini %d: %s", resp.StatusCode, string(raw))
	}

	var result GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// StreamGenerateContent sends a streamGenerateContent request with alt=sse
// and returns a channel of decoded chunks. The HTTP response body is closed
// when the channel is drained or the context is cancelled.
func (c *Client) StreamGenerateContent(ctx context.Context, model string, req *GenerateContentRequest) (<-chan StreamChunk, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(model, "streamGenerateContent")+"&alt=sse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	// No whole-response timeout for streaming; the request context bounds
	// the call instead, and the transport keeps any proxy settings.
	streamClient := &http.Client{Transport: c.streamTransport}
	resp, err := streamClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("gemini %d: %s", resp.StatusCode, string(raw))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	ch := make(chan StreamChunk, 16)
	go func() {
		defer resp.Body.Close()
		defer close(ch)
		for chunk := range ReadStream(scanner) {
			ch <- chunk
		}
	}()
	return ch, nil
}
