package pix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RafaelMoura/SalonFlow/internal/pkg/env"
)

const defaultPixAPIBaseURL = "https://api.pix-gateway.com.br/v1"

// Internal charge statuses reported by GetChargeStatus.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Client talks to the PIX payment gateway over its REST API.
type Client struct {
	APIKey     string
	APIBaseURL string

	HTTPClient *http.Client
}

// Charge is the gateway's answer to a charge creation.
type Charge struct {
	TxID          string     `json:"txid"`
	QRCodePayload string     `json:"qr_code_payload"`
	AmountCents   int64      `json:"amount_cents"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// NewClientFromEnv builds a gateway client from environment configuration.
func NewClientFromEnv() *Client {
	return &Client{
		APIKey:     strings.TrimSpace(env.GetEnv("PIX_API_KEY", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("PIX_API_BASE_URL", defaultPixAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateCharge creates a PIX charge for the given payer email and amount in
// minor currency units. The returned QR payload is shown to the merchant for
// payment from their banking app.
func (c *Client) CreateCharge(ctx context.Context, payerEmail string, amountCents int64) (*Charge, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("PIX_API_KEY is not configured")
	}
	if strings.TrimSpace(payerEmail) == "" {
		return nil, errors.New("payer email is required")
	}
	if amountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"payer_email":  strings.TrimSpace(payerEmail),
		"amount_cents": amountCents,
		"method":       "pix",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/charges", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pix charge creation failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out Charge
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.TxID) == "" {
		return nil, errors.New("pix charge creation returned empty txid")
	}
	return &out, nil
}

// GetChargeStatus fetches the current status of a charge and normalizes it to
// one of the internal status constants.
func (c *Client) GetChargeStatus(ctx context.Context, txID string) (string, error) {
	id := strings.TrimSpace(txID)
	if id == "" {
		return "", errors.New("txid is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBaseURL+"/charges/"+id, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("pix charge status request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	return NormalizeChargeStatus(out.Status), nil
}

// NormalizeChargeStatus maps the gateway's status vocabulary onto the
// internal constants. Unknown values are treated as still pending so an
// in-flight payment is never abandoned on a vocabulary mismatch.
func NormalizeChargeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "paid", "concluded", "confirmed":
		return StatusApproved
	case "rejected", "declined", "failed":
		return StatusRejected
	case "cancelled", "canceled", "expired", "refunded":
		return StatusCancelled
	default:
		return StatusPending
	}
}

// IsTerminalStatus reports whether polling can stop for this status.
func IsTerminalStatus(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}
