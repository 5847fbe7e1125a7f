// Package session carries the per-request identity state: who is logged in
// and which account, if any, is in the middle of password recovery.
//
// The state travels in a signed cookie and is placed in the request
// context by middleware, so handlers never touch process-wide state.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/orio/internal/common"
)

// Session is the state attached to one browser.
//
// The zero value is an anonymous session. UserID and RecoveryTarget are
// never both set: logging in clears a pending recovery and vice versa.
type Session struct {
	UserID         string
	RecoveryTarget string
}

// Authenticated reports whether a user is logged in.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// RecoveryPending reports whether recovery questions were handed out.
func (s Session) RecoveryPending() bool {
	return s.RecoveryTarget != ""
}

// LoggedIn returns the session of an authenticated user.
func LoggedIn(userID string) Session {
	return Session{UserID: userID}
}

// Recovering returns an anonymous session with a pending recovery target.
func Recovering(target string) Session {
	return Session{RecoveryTarget: target}
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by WithSession, or an anonymous one.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(ctxKey{}).(Session)
	return s
}

// Manager reads and writes the session cookie.
type Manager struct {
	secret   []byte
	validity time.Duration
	secure   bool
}

// NewManager creates a Manager. secure marks cookies HTTPS-only.
func NewManager(secret string, validity time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), validity: validity, secure: secure}
}

// Load decodes the request's session cookie. A missing, forged or expired
// cookie yields an anonymous session.
func (m *Manager) Load(r *http.Request) Session {
	c, err := r.Cookie(common.SessionCookieName)
	if err != nil || c.Value == "" {
		return Session{}
	}

	s, err := ParseToken(c.Value, m.secret)
	if err != nil {
		return Session{}
	}
	return s
}

// Save writes s to the response. Saving an anonymous session clears the cookie.
func (m *Manager) Save(w http.ResponseWriter, s Session) error {
	if s == (Session{}) {
		m.Clear(w)
		return nil
	}

	token, err := GenerateToken(s, m.secret, m.validity)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.validity.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
