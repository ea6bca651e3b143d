package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/modish-shop/modish/internal/config"
)

func TestSendWelcomeEmailDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	if err := svc.SendWelcomeEmail("ada@example.com", "Ada"); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestSendWelcomeEmailNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true})
	if err := svc.SendWelcomeEmail("ada@example.com", "Ada"); !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("expected ErrEmailServiceNotConfigured, got %v", err)
	}
}

func TestSendTextEmailInvalidRecipient(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
	})
	if err := svc.sendTextEmail("not-an-email", "subject", "body"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestBuildEmailMessage(t *testing.T) {
	msg := buildEmailMessage("noreply@example.com", "ada@example.com", "Your Modish order MD001", "hello")
	for _, expected := range []string{
		"From: noreply@example.com\r\n",
		"To: ada@example.com\r\n",
		"Subject: Your Modish order MD001\r\n",
		"Content-Type: text/plain; charset=UTF-8\r\n",
	} {
		if !strings.Contains(msg, expected) {
			t.Fatalf("message missing %q: %s", expected, msg)
		}
	}
	if !strings.HasSuffix(msg, "\r\nhello") {
		t.Fatalf("body not separated from headers: %s", msg)
	}
}

func TestBuildFromAddress(t *testing.T) {
	if got := buildFromAddress("noreply@example.com", ""); got != "noreply@example.com" {
		t.Fatalf("expected bare address, got %s", got)
	}
	got := buildFromAddress("noreply@example.com", "Modish")
	if !strings.Contains(got, "noreply@example.com") || !strings.Contains(got, "Modish") {
		t.Fatalf("expected named address, got %s", got)
	}
}
