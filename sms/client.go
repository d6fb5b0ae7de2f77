package sms

import (
	"DentaBill/config"
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client provides bill notification SMS sending via Twilio.
type Client struct {
	client              *twilio.RestClient
	messagingServiceSID string
	enabled             bool
}

// NewFromConfig creates a new SMS client from the application configuration.
// If the Twilio credentials are absent, returns a client that no-ops on all
// operations.
func NewFromConfig(cfg config.TwilioConfig) *Client {
	if !cfg.Enabled() {
		return &Client{enabled: false}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Client{
		client:              client,
		messagingServiceSID: cfg.MessagingServiceSID,
		enabled:             true,
	}
}

// BillMessage builds the notification body for a generated bill. The amount
// is pre-formatted by the caller; downloadURL is the public bill link.
func BillMessage(patientName, amount, treatment, downloadURL string) string {
	return fmt.Sprintf("Dear %s, your dental bill of ₹%s for %s is ready. Download your bill here: %s",
		patientName, amount, treatment, downloadURL)
}

// ToE164 converts a 10-digit Indian mobile number to E.164 form. Numbers
// already carrying a + prefix are passed through.
func ToE164(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return "+91" + phone
}

// SendBillSMS dispatches one SMS and returns the provider message SID. When
// SMS is disabled it is a no-op returning an empty SID and nil error.
func (c *Client) SendBillSMS(ctx context.Context, to, body string) (string, error) {
	if !c.enabled {
		return "", nil
	}

	if to == "" {
		return "", fmt.Errorf("recipient phone number is required")
	}
	if body == "" {
		return "", fmt.Errorf("message body is required")
	}

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetMessagingServiceSid(c.messagingServiceSID)
	params.SetBody(body)

	resp, err := c.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send failed: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	return sid, nil
}

// IsEnabled returns whether SMS sending is enabled.
func (c *Client) IsEnabled() bool {
	return c.enabled
}
