package port

import (
	"context"

	"doneapp/internal/core/session"
)

// IdentityProvider is the external auth boundary. The only contract is
// pass/fail plus an opaque error description.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignUp(ctx context.Context, email, password string) (*session.Session, error)
	SignOut(ctx context.Context, sess *session.Session) error
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*session.Session, error)
	SignUp(ctx context.Context, email, password string) (*session.Session, error)
	SignOut(ctx context.Context, sess *session.Session) error
	Session() *session.Session
	SignedIn() bool
	LastError() string
}
