// Package notify pushes a run summary to an optional webhook endpoint.
// Delivery is best-effort: nothing is stored, nothing is retried, and a
// failed delivery never fails the run.
package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"nightwatch/internal/logging"
	"nightwatch/internal/registry"
)

// Notifier posts run summaries to a webhook endpoint
type Notifier struct {
	url    string
	secret string
	client *http.Client
	logger *logging.Logger
}

// NewNotifier creates a notifier. Returns nil when no URL is configured;
// a nil Notifier is safe to call and does nothing.
func NewNotifier(url, secret string, timeout time.Duration, logger *logging.Logger) *Notifier {
	if url == "" {
		return nil
	}
	return &Notifier{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// payload is the delivered JSON body
type payload struct {
	DeliveryID string            `json:"deliveryId"`
	Event      string            `json:"event"`
	Summary    *registry.Summary `json:"summary"`
}

// Send delivers the run summary. Failures are logged at warn and swallowed.
func (n *Notifier) Send(ctx context.Context, summary *registry.Summary) {
	if n == nil {
		return
	}

	deliveryID := uuid.NewString()
	body, err := json.Marshal(payload{
		DeliveryID: deliveryID,
		Event:      "run.completed",
		Summary:    summary,
	})
	if err != nil {
		n.logger.Warn("webhook payload marshal failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("webhook request build failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Nightwatch-Delivery", deliveryID)
	if n.secret != "" {
		req.Header.Set("X-Nightwatch-Signature", "sha256="+sign(n.secret, body))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("webhook delivery failed", map[string]interface{}{
			"delivery": deliveryID,
			"error":    err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("webhook delivery rejected", map[string]interface{}{
			"delivery": deliveryID,
			"status":   resp.StatusCode,
		})
		return
	}

	n.logger.Debug("webhook delivered", map[string]interface{}{
		"delivery": deliveryID,
		"status":   resp.StatusCode,
	})
}

// sign computes the hex HMAC-SHA256 of the body.
func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a received signature header value against the
// body, for endpoint implementations.
func VerifySignature(secret string, body []byte, header string) bool {
	expected := fmt.Sprintf("sha256=%s", sign(secret, body))
	return hmac.Equal([]byte(expected), []byte(header))
}
