package sms

import (
	"DentaBill/config"
	"context"
	"strings"
	"testing"
)

func TestNewFromConfig_Disabled(t *testing.T) {
	client := NewFromConfig(config.TwilioConfig{})

	if client.IsEnabled() {
		t.Error("Expected client to be disabled without credentials")
	}
}

func TestNewFromConfig_PartialCredentials(t *testing.T) {
	client := NewFromConfig(config.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "token",
	})

	if client.IsEnabled() {
		t.Error("Expected client to be disabled without a messaging service SID")
	}
}

func TestNewFromConfig_Enabled(t *testing.T) {
	client := NewFromConfig(config.TwilioConfig{
		AccountSID:          "AC123",
		AuthToken:           "token",
		MessagingServiceSID: "MG123",
	})

	if !client.IsEnabled() {
		t.Error("Expected client to be enabled")
	}
}

func TestSendBillSMS_DisabledClient(t *testing.T) {
	client := &Client{enabled: false}

	sid, err := client.SendBillSMS(context.Background(), "+919812345678", "hello")
	if err != nil {
		t.Errorf("Expected no error for disabled client, got: %v", err)
	}
	if sid != "" {
		t.Errorf("Expected empty sid for disabled client, got: %q", sid)
	}
}

func TestSendBillSMS_Validation(t *testing.T) {
	client := &Client{enabled: true}

	tests := []struct {
		name string
		to   string
		body string
	}{
		{"empty recipient", "", "hello"},
		{"empty body", "+919812345678", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.SendBillSMS(context.Background(), tt.to, tt.body); err == nil {
				t.Error("Expected error but got nil")
			}
		})
	}
}

func TestToE164(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"plain 10-digit number", "9812345678", "+919812345678"},
		{"already E.164", "+919812345678", "+919812345678"},
		{"surrounding whitespace", " 9812345678 ", "+919812345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToE164(tt.phone); got != tt.want {
				t.Errorf("ToE164(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}

func TestBillMessage(t *testing.T) {
	msg := BillMessage("Asha Rao", "1,250.00", "Root Canal", "https://clinic.example/api/get-bill-pdf?id=abc")

	for _, want := range []string{"Asha Rao", "1,250.00", "Root Canal", "get-bill-pdf?id=abc"} {
		if !strings.Contains(msg, want) {
			t.Errorf("BillMessage missing %q in %q", want, msg)
		}
	}
}
