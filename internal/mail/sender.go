// Package mail relays contact-form messages through a transactional email API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/akiyama/shirabe/internal/config"
	"github.com/akiyama/shirabe/internal/models"
)

// Sender delivers a contact message. Delivery is a single attempt; callers
// surface failures to the client rather than retrying.
type Sender interface {
	Send(ctx context.Context, msg *models.ContactMessage) error
}

// Client posts messages to the configured email-delivery HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	from       string
	to         string
}

// NewClient creates a mail client from config.
func NewClient(cfg *config.MailConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		to:         cfg.To,
	}
}

// emailRequest is the delivery API's send payload.
type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Send relays one contact message. The visitor's address goes into
// reply_to; the configured from/to addresses frame the delivery.
func (c *Client) Send(ctx context.Context, msg *models.ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "Contact form message from " + msg.Name
	}
	payload := &emailRequest{
		From:    c.from,
		To:      []string{c.to},
		Subject: subject,
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Body),
		ReplyTo: msg.Email,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail service returned HTTP %d", resp.StatusCode)
	}
	return nil
}
