package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yeremiapane/hotel-management-app/utils"
)

// Mailer dispatches transactional email. The receipt service only
// depends on this interface; tests inject a fake.
type Mailer interface {
	Send(toName, toEmail, subject, htmlContent string) error
}

// BrevoMailer sends through the Brevo transactional email HTTP API.
type BrevoMailer struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	BaseURL     string
	Client      *http.Client
}

// NewBrevoMailer builds a mailer from externally supplied credentials.
// Returns an error when any of them is missing so a misconfigured
// deployment fails at startup, not on the first send.
func NewBrevoMailer(apiKey, senderEmail, senderName string) (*BrevoMailer, error) {
	if apiKey == "" || senderEmail == "" || senderName == "" {
		return nil, fmt.Errorf("mailer not configured: missing API key, sender email or sender name")
	}
	return &BrevoMailer{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
		BaseURL:     "https://api.brevo.com/v3/smtp/email",
		Client:      &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func (m *BrevoMailer) Send(toName, toEmail, subject, htmlContent string) error {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}

	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": m.SenderName, "email": m.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", m.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		utils.ErrorLogger.Printf("Mail API error: status %d, body: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}

	return nil
}
