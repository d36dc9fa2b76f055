package middleware

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/ghaggin/homesite/internal/config"
	"github.com/ghaggin/homesite/internal/model"
)

const (
	sessionKey = "session_key"
)

var (
	errSessionNotFound = errors.New("session not found")
)

// SessionManager is a narrow session interface over scs, so handlers
// and the auth gate never touch the framework mechanism directly.
type SessionManager struct {
	impl     *scs.SessionManager
	lifetime time.Duration
}

func NewSessionManager(cfg *config.Config) (*SessionManager, error) {
	gob.Register(&model.Session{})

	sm := &SessionManager{
		lifetime: time.Duration(cfg.Session.Lifetime),
	}
	sm.impl = scs.New()
	sm.impl.Lifetime = sm.lifetime

	return sm, nil
}

func (s *SessionManager) Wrap(next http.Handler) http.Handler {
	return s.impl.LoadAndSave(next)
}

func (s *SessionManager) Get(ctx context.Context) (*model.Session, error) {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok {
		return nil, errSessionNotFound
	}

	return session, nil
}

func (s *SessionManager) SetAuthenticated(ctx context.Context, name string) error {
	session, ok := s.impl.Get(ctx, sessionKey).(*model.Session)
	if !ok {
		session = &model.Session{}
	}

	session.UID = name
	session.AuthValid = true
	session.AuthExpiration = time.Now().Add(s.lifetime)

	// renew the token on privilege change
	if err := s.impl.RenewToken(ctx); err != nil {
		return err
	}

	s.impl.Put(ctx, sessionKey, session)
	return nil
}

// ClearAuthenticated logs the session out. Calling it on a session
// that was never authenticated is a no-op.
func (s *SessionManager) ClearAuthenticated(ctx context.Context) error {
	s.impl.Remove(ctx, sessionKey)
	return s.impl.Destroy(ctx)
}
