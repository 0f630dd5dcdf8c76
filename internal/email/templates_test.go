package email

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"backoffice_portal_backend/internal/events"
	platformevents "backoffice_portal_backend/platform/events"
	"backoffice_portal_backend/platform/logger"
)

func TestRenderPasswordResetOTPTemplate(t *testing.T) {
	content, err := renderEmailTemplate("password_reset_otp.html", passwordResetOTPEmailData{
		baseEmailData: baseEmailData{Title: "Password reset code", Heading: "Password reset code"},
		Name:          "Ayesha",
		OTP:           "482913",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(content, "482913") {
		t.Error("rendered email is missing the OTP")
	}
	if !strings.Contains(content, "Ayesha") {
		t.Error("rendered email is missing the recipient name")
	}
}

type captureSender struct {
	to, name, otp string
	calls         int
}

func (c *captureSender) SendPasswordResetOTPEmail(_ context.Context, toEmail, name, otp string) error {
	c.to, c.name, c.otp = toEmail, name, otp
	c.calls++
	return nil
}

func (c *captureSender) SendCustomEmail(context.Context, string, string, string) error {
	return nil
}

func TestListenerSendsOnPasswordResetRequested(t *testing.T) {
	bus := platformevents.NewInMemoryBus(logger.New("test"))
	sender := &captureSender{}
	NewListener(bus, sender, logger.New("test"))

	err := bus.PublishSync(context.Background(), events.PasswordResetRequested{
		BaseEvent: events.NewBaseEvent(),
		UserID:    uuid.New(),
		Email:     "ayesha@example.com",
		Name:      "Ayesha",
		OTP:       "482913",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if sender.calls != 1 {
		t.Fatalf("sender calls = %d, want 1", sender.calls)
	}
	if sender.to != "ayesha@example.com" || sender.otp != "482913" {
		t.Errorf("sent to=%q otp=%q", sender.to, sender.otp)
	}
}
