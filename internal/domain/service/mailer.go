package service

import "context"

// Mailer sends transactional account mail. Implementations render the body
// from the token and base URL; the caller only decides which mail to send.
type Mailer interface {
	// SendConfirmation mails the address a link embedding the email token.
	SendConfirmation(ctx context.Context, toEmail, username, token string) error

	// SendPasswordReset mails the address a password reset link embedding the
	// email token.
	SendPasswordReset(ctx context.Context, toEmail, username, token string) error
}
