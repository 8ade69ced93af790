// Package session owns the console's authentication state: the current
// backend token and the operator's language preference.
//
// The Session is the only writer of the token. It initializes from a [Store]
// so a token survives restarts, and writes through on login. Every other
// component (the API client's request decoration, the navigation guard)
// only reads it.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Store keys for persisted credential state. Absence of either key is a
// valid, non-error state.
const (
	TokenKey    = "token"
	UserInfoKey = "user_info"
)

// Store is the durable key-value boundary the session mirrors itself into.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Credentials are the inputs to the backend's login endpoints.
type Credentials struct {
	Username string
	Password string
	Code     string // verification code, only for LoginWithCode
}

// LoginResult is what the backend's login call yields on success.
type LoginResult struct {
	Token   string
	Message string
}

// Authenticator exchanges credentials for a token. Implemented by the API
// layer's auth service; sessions depend on the interface so tests can
// inject a fake.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
}

// Session holds the current token and language preference.
type Session struct {
	mu       sync.RWMutex
	token    string
	language string
	store    Store
	logger   *log.Logger
}

// New creates a Session initialized from the store. Initialization fails
// soft: a missing token key or a store read error yields an empty token,
// never an error.
func New(store Store, logger *log.Logger) *Session {
	s := &Session{store: store, logger: logger}

	if store != nil {
		token, ok, err := store.Get(TokenKey)
		if err != nil {
			if logger != nil {
				logger.Warn("failed to read persisted token", "error", err)
			}
		} else if ok {
			s.token = token
		}
	}

	return s
}

// Token returns the current token. Empty means unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn reports whether a non-empty token is held.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Language returns the current language preference. Empty means "use the
// backend default".
func (s *Session) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage sets the in-memory language preference. It is not persisted
// and triggers no network call.
func (s *Session) SetLanguage(lang string) {
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
}

// Login delegates to the authenticator, and on success stores the returned
// token in memory and in the store. On failure the token is left untouched
// and the error propagates. The result is returned for display.
func (s *Session) Login(ctx context.Context, auth Authenticator, creds Credentials) (*LoginResult, error) {
	if auth == nil {
		return nil, fmt.Errorf("no authenticator configured")
	}

	res, err := auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = res.Token
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Set(TokenKey, res.Token); err != nil && s.logger != nil {
			s.logger.Warn("failed to persist token", "error", err)
		}
	}

	return res, nil
}

// Logout clears the in-memory token and erases the persisted token and
// user info. Idempotent: a second call on a logged-out session is a no-op.
func (s *Session) Logout() {
	s.clear()
}

// Reset is the system-initiated variant of [Session.Logout], invoked by
// the API client when the backend reports an expired token. Behavior is
// identical; the two names are kept so call sites read as intent.
func (s *Session) Reset() {
	s.clear()
}

func (s *Session) clear() {
	s.mu.Lock()
	wasEmpty := s.token == ""
	s.token = ""
	s.mu.Unlock()

	if wasEmpty {
		return
	}

	if s.store != nil {
		for _, key := range []string{TokenKey, UserInfoKey} {
			if err := s.store.Delete(key); err != nil && s.logger != nil {
				s.logger.Warn("failed to erase credential", "key", key, "error", err)
			}
		}
	}
}
