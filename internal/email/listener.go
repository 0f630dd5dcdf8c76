package email

import (
	"context"

	"backoffice_portal_backend/internal/events"
	"backoffice_portal_backend/platform/logger"
)

// Listener delivers emails in response to domain events so services never
// talk to SMTP directly.
type Listener struct {
	sender Sender
	log    *logger.Logger
}

// NewListener creates a listener and subscribes it to the event bus.
func NewListener(bus events.Bus, sender Sender, log *logger.Logger) *Listener {
	l := &Listener{sender: sender, log: log}
	bus.Subscribe(events.PasswordResetRequested{}.EventName(), events.HandlerFunc(l.onPasswordResetRequested))
	return l
}

func (l *Listener) onPasswordResetRequested(ctx context.Context, event events.Event) error {
	e, ok := event.(events.PasswordResetRequested)
	if !ok {
		return nil
	}
	if err := l.sender.SendPasswordResetOTPEmail(ctx, e.Email, e.Name, e.OTP); err != nil {
		l.log.Error("failed to send password reset email", "error", err, "user_id", e.UserID)
		return err
	}
	return nil
}
