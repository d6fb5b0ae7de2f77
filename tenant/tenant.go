package tenant

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when an operation requires a tenant
// identity but no session was attached to the request context.
var ErrNotAuthenticated = errors.New("no authenticated tenant session")

// Session identifies the active clinic for a request. It is attached to the
// request context by the token middleware and passed explicitly into every
// scoped repository call; there is no ambient fallback identity. Callers
// that must work without a session (public bill links) go through the bill
// repository's cross-tenant scan instead.
type Session struct {
	DentistID     string
	Role          string
	Authenticated bool
}

type contextKey string

const sessionKey contextKey = "tenantSession"

// NewContext returns a copy of ctx carrying the session.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext extracts the session attached by the token middleware. It
// fails with ErrNotAuthenticated when no verified session is present.
func FromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok || !s.Authenticated || s.DentistID == "" {
		return Session{}, ErrNotAuthenticated
	}
	return s, nil
}
