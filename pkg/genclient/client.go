package genclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

const (
	previewPath  = "/api/v1/schema/preview"
	registerPath = "/api/v1/mappings"
	generatePath = "/api/v1/classes/generate"

	defaultTimeout = 30 * time.Second
)

var (
	// ErrBackendUnavailable indicates the request never produced a response.
	ErrBackendUnavailable = errors.New("generator backend unavailable")
	// ErrBackendRejected indicates the backend answered with a non-2xx status.
	ErrBackendRejected = errors.New("generator backend rejected the request")
	// ErrInvalidResponse indicates the backend answered 2xx with an
	// undecodable body.
	ErrInvalidResponse = errors.New("invalid response from generator backend")
)

// Client calls the generator backend.
type Client struct {
	http    *http.Client
	baseURL *url.URL
}

// NewClient creates a new [Client] for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme in base URL %q", baseURL)
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: u,
	}, nil
}

// MustNewClient runs [NewClient] and panics on any errors.
func MustNewClient(baseURL string, timeout time.Duration) *Client {
	c, err := NewClient(baseURL, timeout)
	if err != nil {
		panic(err)
	}

	return c
}

// post sends one JSON request and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL.JoinPath(path).String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("X-Request-Id", requestID)

	logger := slog.With(
		slog.String("endpoint", path),
		slog.String("request_id", requestID),
	)
	logger.Debug("calling generator backend")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("close response body", slog.Any("err", err))
		}
	}()

	respBody, err := c.readBody(resp)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	logger.Debug("generator backend answered",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(respBody)),
	)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s: %s", ErrBackendRejected, resp.Status, serverDetail(respBody))
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return nil
}

func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	reader := resp.Body

	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gz.Close() //nolint:errcheck // Read-only.

		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

// serverDetail extracts a human-readable message from an error response body.
func serverDetail(body []byte) string {
	detail := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{}

	if err := json.Unmarshal(body, &detail); err == nil {
		if detail.Error != "" {
			return detail.Error
		}

		if detail.Message != "" {
			return detail.Message
		}
	}

	if len(body) > 0 {
		return string(body)
	}

	return "no detail provided"
}
