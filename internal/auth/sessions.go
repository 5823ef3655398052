// Package auth provides password hashing and cookie-session handling for the
// HTTP boundary.
package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "evalboard_session"
	userIDKey   = "userID"
)

// SessionManager wraps a gorilla cookie store and tracks only the signed-in
// user's id; the user record itself is always re-fetched from storage.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager builds a cookie-backed session store. Secure should be
// true whenever the service terminates TLS.
func NewSessionManager(secret string, maxAgeSecs int, secure bool) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSecs,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// SignIn records the user id on the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

// SignOut expires the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// UserID extracts the signed-in user's id from the request cookie, if any.
func (m *SessionManager) UserID(r *http.Request) (string, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}
	id, ok := session.Values[userIDKey].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
