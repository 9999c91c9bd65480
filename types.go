package jobnest

import (
	"context"
	"fmt"
)

// Logger is the minimal logging surface the session core needs. Provide an
// adapter over your application logger; defLogger writes to stdout.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Account is the bare identity the provider knows about: the issued user id
// and the email the account was created with. Everything else (profile data)
// is layered on by this package.
type Account struct {
	UserID string
	Email  string
}

// IdentityService wraps the external authentication service. The core treats
// it as an opaque capability set and does not care about its wire protocol.
//
// OnSessionChange registers a listener for session-changed events and returns
// an unsubscribe function. Implementations must invoke the listener with the
// current session state at registration time so consumers get an initial
// resolution event.
type IdentityService interface {
	CreateAccount(ctx context.Context, email, password string) (Account, error)
	VerifyCredentials(ctx context.Context, email, password string) (Account, error)
	EndSession(ctx context.Context) error
	OnSessionChange(fn func(active *Account)) (unsubscribe func())
}

// SessionStorage is the durable key-value slot the session profile blob is
// persisted to. Writers replace or delete the whole value, never merge.
type SessionStorage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// DefaultLogger returns the stdout fallback logger used when no Logger is
// injected.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] JOBNEST "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] JOBNEST "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] JOBNEST "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] JOBNEST "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
