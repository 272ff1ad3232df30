package auth

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/yabook/yabook/store"
)

// Logger is the minimal logging surface auth components need. The glog
// loggers wired by cmd/server satisfy it directly.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// UserStore is the persistence collaborator for the auth flow. Uniqueness of
// username/email is enforced by the storage layer, not here.
type UserStore interface {
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*store.User, error)
	Register(ctx context.Context, user *store.User) (*store.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

// Mailer dispatches outbound email. Best effort, never retried here.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
