package mail

import (
	"errors"
	"log/slog"

	"github.com/medimatch/medimatch-backend/internal/config"
)

// Mailer delivers transactional email. The caller treats any delivery
// failure as a degraded condition, never a hard one: the account is already
// committed by the time mail is attempted.
type Mailer interface {
	SendOTP(to, code string) error
}

// ErrNotConfigured is returned by the no-op mailer so callers fall back to
// echoing the OTP in the response.
var ErrNotConfigured = errors.New("mail transport is not configured")

// New picks the HTTP client when an API key is present, otherwise a no-op
// implementation of the same interface.
func New(cfg *config.Config) Mailer {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, OTP emails will be echoed in responses")
		return &noopMailer{}
	}
	return newResendClient(cfg.ResendAPIKey, cfg.MailFrom)
}

type noopMailer struct{}

func (n *noopMailer) SendOTP(to, code string) error {
	return ErrNotConfigured
}
