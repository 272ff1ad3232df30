// Package mailer provides the outbound email transports used to deliver
// account verification messages. A real SMTP client backed by goemail is used
// in production; development environments fall back to a logger that prints
// the message instead of sending it.
package mailer

import (
	"github.com/yabook/yabook/auth"
)

// LogMailer writes every message to the logger instead of delivering it.
// Useful in development, where the verification link printed to stdout is all
// anyone needs.
type LogMailer struct {
	logger auth.Logger
}

func NewLogMailer(logger auth.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(to, subject, htmlBody string) error {
	m.logger.Info("mail to %s: %s", to, subject)
	m.logger.Debug("mail body: %s", htmlBody)
	return nil
}

var _ auth.Mailer = (*LogMailer)(nil)
