package mail

import (
	"log/slog"
	"strings"
	"testing"

	"contacts/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMailer(t *testing.T) *smtpMailer {
	t.Helper()

	cfg := &config.Config{
		Mail: &config.MailConfig{
			Host: "localhost",
			Port: 1025,
			From: "noreply@contacts.local",
		},
	}
	cfg.HTTP.BaseURL = "http://localhost:8080/"

	mailer, err := NewSMTPMailer(cfg, slog.Default())
	require.NoError(t, err)

	return mailer.(*smtpMailer)
}

func renderBody(t *testing.T, m *smtpMailer, tmplName string) string {
	t.Helper()

	tmpl := m.confirmation
	if tmplName == "reset" {
		tmpl = m.reset
	}

	var body strings.Builder
	err := tmpl.Execute(&body, mailData{Username: "alice", BaseURL: m.baseURL, Token: "tok-123"})
	require.NoError(t, err)

	return body.String()
}

func TestConfirmationBody_LinksConfirmEndpoint(t *testing.T) {
	m := newTestMailer(t)

	body := renderBody(t, m, "confirmation")

	assert.Contains(t, body, "http://localhost:8080/api/auth/confirmed_email/tok-123")
}

func TestPasswordResetBody_LinksSetPasswordEndpoint(t *testing.T) {
	m := newTestMailer(t)

	body := renderBody(t, m, "reset")

	assert.Contains(t, body, "http://localhost:8080/api/auth/set_password/tok-123")
	assert.NotContains(t, body, "reset_password")
}

func TestNewSMTPMailer_RequiresHost(t *testing.T) {
	cfg := &config.Config{Mail: &config.MailConfig{}}

	_, err := NewSMTPMailer(cfg, slog.Default())

	assert.Error(t, err)
}
