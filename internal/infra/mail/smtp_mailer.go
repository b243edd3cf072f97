// Package mail delivers transactional account mail over SMTP.
package mail

import (
	"context"
	"log/slog"
	"strings"
	"text/template"

	"contacts/config"
	"contacts/internal/domain/service"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
)

const confirmationBody = `Hi {{.Username}},

Thanks for signing up. Please confirm your email address by opening the
link below:

{{.BaseURL}}/api/auth/confirmed_email/{{.Token}}

If you did not create this account, you can ignore this message.
`

const passwordResetBody = `Hi {{.Username}},

A password reset was requested for your account. Open the link below to
choose a new password:

{{.BaseURL}}/api/auth/set_password/{{.Token}}

The link expires in 7 days. If you did not request a reset, you can
ignore this message.
`

type mailData struct {
	Username string
	BaseURL  string
	Token    string
}

// smtpMailer implements service.Mailer on top of wneessen/go-mail. A client is
// created per send; SMTP connections are not worth pooling at this volume.
type smtpMailer struct {
	cfg          *config.MailConfig
	baseURL      string
	logger       *slog.Logger
	confirmation *template.Template
	reset        *template.Template
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.Mail == nil || cfg.Mail.Host == "" {
		return nil, errors.New("mail host is not configured")
	}

	return &smtpMailer{
		cfg:          cfg.Mail,
		baseURL:      strings.TrimSuffix(cfg.HTTP.BaseURL, "/"),
		logger:       logger,
		confirmation: template.Must(template.New("confirmation").Parse(confirmationBody)),
		reset:        template.Must(template.New("reset").Parse(passwordResetBody)),
	}, nil
}

// SendConfirmation mails the address a link embedding the email token.
func (m *smtpMailer) SendConfirmation(ctx context.Context, toEmail, username, token string) error {
	return m.send(ctx, toEmail, "Confirm your email", m.confirmation, mailData{
		Username: username,
		BaseURL:  m.baseURL,
		Token:    token,
	})
}

// SendPasswordReset mails the address a password reset link embedding the
// email token.
func (m *smtpMailer) SendPasswordReset(ctx context.Context, toEmail, username, token string) error {
	return m.send(ctx, toEmail, "Reset your password", m.reset, mailData{
		Username: username,
		BaseURL:  m.baseURL,
		Token:    token,
	})
}

func (m *smtpMailer) send(ctx context.Context, toEmail, subject string, tmpl *template.Template, data mailData) error {
	var body strings.Builder
	if err := tmpl.Execute(&body, data); err != nil {
		return errors.Wrap(err, "failed to render mail body")
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(toEmail); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body.String())

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create SMTP client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	m.logger.InfoContext(ctx, "Mail sent",
		slog.String("to", toEmail),
		slog.String("subject", subject),
	)

	return nil
}
