// Package session provides cookie-backed admin sessions. Tokens are
// random UUIDs held in process memory; restarting the server logs
// every maintainer out, which is acceptable for a single-binary
// deployment.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie served to authenticated maintainers.
const CookieName = "gamestore_session"

// usernameContextKey stores the authenticated username on the echo context.
const usernameContextKey = "session_username"

// Session tracks one authenticated maintainer.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Manager owns the in-memory session table.
type Manager struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewManager creates a session manager with the given session lifetime.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session for the given username and returns its token.
func (m *Manager) Create(username string) string {
	token := uuid.New().String()
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[token] = &Session{
		Token:     token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	return token
}

// Lookup resolves a token to its session. Expired sessions are
// dropped on access.
func (m *Manager) Lookup(token string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(sess.ExpiresAt) {
		m.Destroy(token)
		return nil, false
	}
	return sess, true
}

// Destroy removes a session.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// DestroyUser removes every session belonging to a username, used when
// an account is deleted or its credentials rotate.
func (m *Manager) DestroyUser(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, sess := range m.sessions {
		if sess.Username == username {
			delete(m.sessions, token)
		}
	}
}

// Cookie builds the session cookie for a token.
func (m *Manager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds an expired cookie that removes the session cookie.
func ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware rejects requests lacking a valid session cookie and
// stores the authenticated username on the request context.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(CookieName)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}
			sess, ok := m.Lookup(cookie.Value)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, map[string]string{
					"error": "session expired",
				})
			}
			ctx.Set(usernameContextKey, sess.Username)
			return next(ctx)
		}
	}
}

// Username returns the authenticated username stored by Middleware.
func Username(ctx echo.Context) string {
	if username, ok := ctx.Get(usernameContextKey).(string); ok {
		return username
	}
	return ""
}
