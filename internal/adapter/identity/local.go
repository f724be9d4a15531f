package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"doneapp/internal/core/domain"
	"doneapp/internal/core/port"
	"doneapp/internal/core/session"
	"doneapp/internal/core/util"
	"doneapp/pkg/auth"
)

// LocalProvider is the built-in identity provider: accounts live in the user
// table and sessions are carried as signed tokens.
type LocalProvider struct {
	users port.UserRepository
	jwt   *auth.JWT
}

func NewLocalProvider(users port.UserRepository, secret string) port.IdentityProvider {
	return &LocalProvider{
		users: users,
		jwt:   &auth.JWT{Secret: secret},
	}
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	user, err := p.users.GetByEmail(ctx, email)

	if err != nil {
		slog.Info("Sign in rejected", "email", email)
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := util.ComparePassword(password, user.EncryptedPassword); err != nil {
		slog.Info("Sign in rejected", "email", email)
		return nil, fmt.Errorf("invalid email or password")
	}

	return p.newSession(user)
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string) (*session.Session, error) {
	if _, err := p.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already taken")
	}

	encrypted, err := util.GenerateEncrypt(password)

	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	user, err := p.users.Create(ctx, domain.User{
		UUID:              uuid.New(),
		Email:             email,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	})

	if err != nil {
		return nil, err
	}

	return p.newSession(user)
}

// SignOut has nothing to revoke for stateless tokens; the session simply
// stops being used.
func (p *LocalProvider) SignOut(ctx context.Context, sess *session.Session) error {
	return nil
}

func (p *LocalProvider) Resolve(ctx context.Context, token string) (*session.Session, error) {
	claims, err := p.jwt.VerifyToken(token)

	if err != nil {
		return nil, err
	}

	userID, ok := claims["user_id"].(float64)

	if !ok {
		return nil, fmt.Errorf("token missing user id")
	}

	uid, _ := claims["uid"].(string)
	email, _ := claims["email"].(string)

	return &session.Session{
		UserID: int(userID),
		UID:    uid,
		Email:  email,
		Token:  token,
	}, nil
}

func (p *LocalProvider) newSession(user domain.User) (*session.Session, error) {
	token, err := p.jwt.CreateToken(user.ID, user.UUID.String(), user.Email)

	if err != nil {
		return nil, err
	}

	return &session.Session{
		UserID: user.ID,
		UID:    user.UUID.String(),
		Email:  user.Email,
		Token:  token,
	}, nil
}
