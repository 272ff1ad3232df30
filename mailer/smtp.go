package mailer

import (
	"crypto/tls"
	"fmt"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"

	"github.com/yabook/yabook/auth"
)

// SMTPClient delivers mail over smtps. When host, user, or password is empty
// the client is disabled and Send becomes a no-op, which keeps local setups
// working without a mail server.
type SMTPClient struct {
	smtp        *goemail.SMTP
	mailName    string
	mailAddress string
	disabled    bool
}

// NewSMTPClient builds a client for the given mail host. The fromAddress may
// carry a display name, e.g. "YaBook <yabook@nowhere.org>".
func NewSMTPClient(host, user, password, fromAddress string, skipVerify bool) (*SMTPClient, error) {
	if host == "" || user == "" || password == "" {
		return &SMTPClient{disabled: true}, nil
	}

	h := fmt.Sprintf("smtps://%v:%v@%v", user, password, host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, err
	}

	a, err := mail.ParseAddress(fromAddress)
	if err != nil {
		return nil, err
	}

	tlsConfig := &tls.Config{}
	if skipVerify {
		tlsConfig.InsecureSkipVerify = true
	}

	client, err := goemail.NewSMTP(u.String(), tlsConfig)
	if err != nil {
		return nil, err
	}

	return &SMTPClient{
		smtp:        client,
		mailName:    a.Name,
		mailAddress: a.Address,
	}, nil
}

// IsEnabled reports whether the client has a live SMTP connection configured.
func (c *SMTPClient) IsEnabled() bool {
	return !c.disabled
}

func (c *SMTPClient) Send(to, subject, htmlBody string) error {
	if c.disabled {
		return nil
	}

	msg := goemail.NewHTMLMessage(c.mailAddress, subject, htmlBody)
	msg.SetName(c.mailName)
	msg.AddTo(to)

	return c.smtp.Send(msg)
}

var _ auth.Mailer = (*SMTPClient)(nil)
