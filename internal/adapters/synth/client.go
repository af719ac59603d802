// Package synth provides an adapter for the external instrument service.
// It implements the core's instrument sink port by translating trigger and
// transport instructions into JSON calls against a local synth renderer.
package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akashsahu54/symphony/internal/core/domain"
	"github.com/akashsahu54/symphony/internal/core/ports"
)

const defaultBaseURL = "http://localhost:9300"

// Client is an HTTP client for the synth service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// compile-time interface assertion
var _ ports.InstrumentSink = (*Client)(nil)

// NewClient constructs a synth client. An empty baseURL falls back to the
// local default.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type tempoRequest struct {
	BPM int `json:"bpm"`
}

// SetTempo sets the transport's global tempo.
func (c *Client) SetTempo(ctx context.Context, bpm int) error {
	return c.post(ctx, "/transport/tempo", tempoRequest{BPM: bpm})
}

// Trigger schedules one note event on the transport clock.
func (c *Client) Trigger(ctx context.Context, event domain.NoteEvent) error {
	if err := c.post(ctx, "/triggers", event); err != nil {
		note := ""
		if len(event.Notes) > 0 {
			note = event.Notes[0]
		}
		return fmt.Errorf("%w: %v", ports.TriggerError{Instrument: event.Instrument, Note: note}, err)
	}
	return nil
}

// Start starts the transport.
func (c *Client) Start(ctx context.Context) error {
	return c.post(ctx, "/transport/start", nil)
}

// Stop stops the transport.
func (c *Client) Stop(ctx context.Context) error {
	return c.post(ctx, "/transport/stop", nil)
}

// CancelAllScheduled drops every scheduled-but-untriggered event.
func (c *Client) CancelAllScheduled(ctx context.Context) error {
	return c.post(ctx, "/transport/cancel", nil)
}

// PreviewURL returns the address of the service's rendered MP3 preview for
// a composition. The render may lag scheduling; callers poll or retry.
func (c *Client) PreviewURL(compositionID string) string {
	return c.baseURL + "/renders/" + compositionID + ".mp3"
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("synth adapter: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("synth adapter: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("synth adapter: %w: %v", ports.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("synth adapter: unexpected status %d", resp.StatusCode)
	}
	return nil
}
