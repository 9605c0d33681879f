package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kairohq/internexplore_backend/config"
)

// ErrDisabled is returned when the parser client is configured off.
var ErrDisabled = errors.New("resume parser is disabled")

// Client talks to the external resume parsing service. Failures here must
// never fail the caller's primary write; callers treat errors as degradation.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewFromCentral creates a parser client from central config.
func NewFromCentral(cfg config.ResumeParserConfig) *Client {
	return New(FromCentralConfig(cfg))
}

func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout()},
	}
}

// Enabled reports whether the client will attempt network calls.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled && c.cfg.Endpoint != ""
}

// Parse sends a resume URL for structured extraction and returns the raw
// JSON payload the parser produced.
func (c *Client) Parse(ctx context.Context, resumeURL string) (json.RawMessage, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if resumeURL == "" {
		return nil, fmt.Errorf("resume url is empty")
	}

	body, err := json.Marshal(map[string]string{"resume_url": resumeURL})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("parser returned invalid JSON")
	}

	return json.RawMessage(payload), nil
}
