package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

// Config captures the SMTP relay settings. An empty Host disables sending.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends the approval notification email. Sends are best-effort:
// callers log failures and carry on.
type SMTPMailer struct {
	cfg    Config
	logger zerolog.Logger
}

func NewSMTPMailer(cfg Config, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// SendApprovalNotice emails the member that an admin approved their account.
// When no SMTP host is configured the send is silently skipped.
func (m *SMTPMailer) SendApprovalNotice(ctx context.Context, email, name string) error {
	if m.cfg.Host == "" {
		m.logger.Debug().Str("email", email).Msg("smtp not configured, skipping approval email")
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("approval email from: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("approval email to: %w", err)
	}
	msg.Subject("Your E-Library account has been approved")
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Hello %s,\n\nYour E-Library membership has been approved. You can now log in and browse the catalog.\n",
		name,
	))

	opts := []gomail.Option{gomail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send approval email: %w", err)
	}

	m.logger.Info().Str("email", email).Msg("approval email sent")
	return nil
}
