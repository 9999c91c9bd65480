// Package guardware gates fiber routes on session state, applying the same
// allow/redirect/pending decision the client-side route guard uses.
package guardware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	jobnest "github.com/jobnest/go-jobnest"
)

// DefaultContextKey is where the authenticated profile is stored on the
// request context for downstream handlers.
const DefaultContextKey = "session_user"

// SessionReader is the slice of the session manager the middleware needs.
type SessionReader interface {
	Snapshot() jobnest.Snapshot
}

// Config configures the guard middleware.
type Config struct {
	// Session supplies the current session snapshot. Required.
	Session SessionReader
	// RequiredRole restricts the route to one role. Empty admits any
	// authenticated user.
	RequiredRole jobnest.Role
	// ContextKey overrides where the profile is stored on the request
	// context.
	ContextKey string
	// PendingHandler runs while session state is still resolving. Defaults
	// to 503 with a retry hint.
	PendingHandler fiber.Handler
}

// New returns a fiber handler enforcing the guard decision: allow continues
// the chain with the profile in Locals, redirects use 302 for GET and 303
// otherwise, pending defers to PendingHandler.
func New(cfg Config) fiber.Handler {
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.PendingHandler == nil {
		cfg.PendingHandler = defaultPendingHandler
	}

	return func(c *fiber.Ctx) error {
		snap := cfg.Session.Snapshot()
		outcome := jobnest.EvaluateGuard(snap, cfg.RequiredRole)

		switch outcome.Decision {
		case jobnest.DecisionPending:
			return cfg.PendingHandler(c)
		case jobnest.DecisionRedirect:
			status := http.StatusSeeOther
			if c.Method() == fiber.MethodGet {
				status = http.StatusFound
			}
			return c.Redirect(outcome.RedirectTo, status)
		}

		c.Locals(cfg.ContextKey, snap.User)
		return c.Next()
	}
}

// UserFromContext returns the profile the middleware stored for the request.
func UserFromContext(c *fiber.Ctx, key ...string) (*jobnest.Profile, bool) {
	contextKey := DefaultContextKey
	if len(key) > 0 && key[0] != "" {
		contextKey = key[0]
	}
	user, ok := c.Locals(contextKey).(*jobnest.Profile)
	return user, ok && user != nil
}

func defaultPendingHandler(c *fiber.Ctx) error {
	c.Set(fiber.HeaderRetryAfter, "1")
	return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "session state is still resolving",
	})
}
