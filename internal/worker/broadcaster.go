package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/AraTman/recipe-parser-api/internal/httpclient"
)

// ProgressUpdate is the body delivered to the progress webhook.
type ProgressUpdate struct {
	JobID   string `json:"job_id"`
	UserID  string `json:"user_id,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProgressBroadcaster posts job progress updates to a configured webhook.
// A broadcaster with an empty URL is a no-op.
type ProgressBroadcaster struct {
	webhookURL string
	httpClient *http.Client
}

func NewProgressBroadcaster(webhookURL string) *ProgressBroadcaster {
	return &ProgressBroadcaster{
		webhookURL: webhookURL,
		httpClient: httpclient.NewInstrumentedClient(10 * time.Second),
	}
}

func (b *ProgressBroadcaster) Broadcast(ctx context.Context, update ProgressUpdate) error {
	if b == nil || b.webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal progress update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver progress update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("progress webhook returned status %d", resp.StatusCode)
	}

	return nil
}
