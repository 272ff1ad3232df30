package mailer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabook/yabook/mailer"
)

type captureLogger struct {
	lines []string
}

func (l *captureLogger) Debug(format string, args ...any) { l.log(format, args...) }
func (l *captureLogger) Info(format string, args ...any)  { l.log(format, args...) }
func (l *captureLogger) Error(format string, args ...any) { l.log(format, args...) }

func (l *captureLogger) log(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestLogMailer(t *testing.T) {
	logger := &captureLogger{}
	m := mailer.NewLogMailer(logger)

	err := m.Send("babar@celesteville.com", "Please confirm", "<p>hello</p>")
	require.NoError(t, err)
	require.NotEmpty(t, logger.lines)
	assert.Contains(t, logger.lines[0], "babar@celesteville.com")
}

func TestSMTPClientDisabled(t *testing.T) {
	tests := []struct {
		name string
		host string
		user string
		pass string
	}{
		{"No host", "", "user", "pass"},
		{"No user", "mail.example.com:465", "", "pass"},
		{"No password", "mail.example.com:465", "user", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := mailer.NewSMTPClient(tt.host, tt.user, tt.pass, "yabook@nowhere.org", false)
			require.NoError(t, err)
			assert.False(t, client.IsEnabled())

			// sends become no-ops instead of failing
			assert.NoError(t, client.Send("babar@celesteville.com", "subject", "body"))
		})
	}
}

func TestSMTPClientBadFromAddress(t *testing.T) {
	_, err := mailer.NewSMTPClient("mail.example.com:465", "user", "pass", "not an address", false)
	assert.Error(t, err)
}
