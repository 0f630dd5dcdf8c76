// Package email delivers transactional mail for the portal.
package email

import "context"

// Sender delivers the portal's transactional emails.
type Sender interface {
	SendPasswordResetOTPEmail(ctx context.Context, toEmail, name, otp string) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender is used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendPasswordResetOTPEmail(ctx context.Context, toEmail, name, otp string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

var _ Sender = NoopSender{}
