package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"doneapp/internal/core/port"
	"doneapp/internal/core/session"
)

// AuthService is a two-state controller (signed-out, signed-in) around the
// external identity provider. The session cell is the single source of
// truth for session state; the controller subscribes to it once at startup
// and mirrors whatever the cell reports, rather than deriving the state
// from its own calls.
//
// A wipe or commit failure of the local store leaves it in an unknown state,
// so every such failure aborts the attempt and surfaces as ErrLocalStore
// instead of adopting or ending a session over inconsistent data.
type AuthService struct {
	provider port.IdentityProvider
	syncSvc  port.SyncService
	cell     *session.Cell

	mu        sync.RWMutex
	signedIn  bool
	lastError string

	unsubscribe func()
	done        chan struct{}
}

func NewAuthService(provider port.IdentityProvider, syncSvc port.SyncService, cell *session.Cell) *AuthService {
	as := &AuthService{
		provider: provider,
		syncSvc:  syncSvc,
		cell:     cell,
		done:     make(chan struct{}),
	}

	ch, cancel := cell.Subscribe()
	as.unsubscribe = cancel

	go func() {
		defer close(as.done)

		for sess := range ch {
			as.mu.Lock()
			as.signedIn = sess.Authenticated()
			as.mu.Unlock()
		}
	}()

	return as
}

// Close tears down the session subscription.
func (as *AuthService) Close() {
	as.unsubscribe()
	<-as.done
}

// SignIn delegates the credential check and pulls the user's remote
// collection into the local store. The session is adopted only once the
// pulled set has committed locally; a commit failure fails the sign-in.
func (as *AuthService) SignIn(ctx context.Context, email, password string) (*session.Session, error) {
	as.setLastError("")

	sess, err := as.provider.SignIn(ctx, email, password)
	if err != nil {
		as.setLastError(err.Error())
		return nil, err
	}

	if err := as.syncSvc.PullAll(ctx, sess, func() {
		slog.Info("Auth#SignIn", "status", "data loaded, ready to go")
	}); err != nil {
		slog.Error("Auth#SignIn", "pull_all", err)
		as.setLastError(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrLocalStore, err)
	}

	as.cell.Set(sess)

	return sess, nil
}

// SignUp delegates account creation. A fresh account has no local history,
// so the local store is wiped before the new session is adopted; a failed
// wipe fails the sign-up.
func (as *AuthService) SignUp(ctx context.Context, email, password string) (*session.Session, error) {
	as.setLastError("")

	sess, err := as.provider.SignUp(ctx, email, password)
	if err != nil {
		as.setLastError(err.Error())
		return nil, err
	}

	if err := as.syncSvc.WipeLocal(ctx, sess); err != nil {
		slog.Error("Auth#SignUp", "wipe_local", err)
		as.setLastError(err.Error())
		return nil, fmt.Errorf("%w: %v", ErrLocalStore, err)
	}

	as.cell.Set(sess)

	return sess, nil
}

// SignOut wipes the signing-out user's local state first and then asks the
// provider to end the session. A provider failure still records the message
// and the wipe is not reversed. The controller session ends only when it is
// the one signing out, so another user's adopted session is never touched.
// Signing out while signed out is a no-op.
func (as *AuthService) SignOut(ctx context.Context, sess *session.Session) error {
	as.setLastError("")

	if !sess.Authenticated() {
		return nil
	}

	if err := as.syncSvc.WipeLocal(ctx, sess); err != nil {
		slog.Error("Auth#SignOut", "wipe_local", err)
		as.setLastError(err.Error())
		return fmt.Errorf("%w: %v", ErrLocalStore, err)
	}

	if err := as.provider.SignOut(ctx, sess); err != nil {
		as.setLastError(err.Error())
		return err
	}

	if current := as.cell.Get(); current != nil && current.UID == sess.UID {
		as.cell.Set(nil)
	}

	return nil
}

func (as *AuthService) Session() *session.Session {
	return as.cell.Get()
}

// SignedIn reports the mirrored state machine position.
func (as *AuthService) SignedIn() bool {
	as.mu.RLock()
	defer as.mu.RUnlock()

	return as.signedIn
}

func (as *AuthService) LastError() string {
	as.mu.RLock()
	defer as.mu.RUnlock()

	return as.lastError
}

func (as *AuthService) setLastError(msg string) {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.lastError = msg
}
