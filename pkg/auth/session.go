// Package auth implements the operator gate: a shared access code checked at
// login, exchanged for a signed session cookie that guards the admin API.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/sessions"
)

// Store is the session store for operator sessions.
var Store *sessions.CookieStore

// SessionName is the name of the operator session cookie.
const SessionName = "mycoscan-admin-session"

// Session value keys.
const (
	// SessionKeyOperator holds a per-login operator id, set at login. Its
	// presence is what authenticates a request; it also keys the server-side
	// editor sessions.
	SessionKeyOperator = "operator"
)

// InitSessionStore initializes the cookie-based session store.
//
// The secret parameter signs session cookies. It can be any passphrase - it
// is SHA-256 hashed to derive a 32-byte key - and must be consistent across
// server restarts.
//
// secure controls the cookie's Secure flag; disable only for local
// development over plain HTTP.
func InitSessionStore(secret string, ttlMinutes int, secure bool) {
	key := sha256.Sum256([]byte(secret))

	Store = sessions.NewCookieStore(key[:])
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   ttlMinutes * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// GetSession retrieves the operator session from the request.
// Creates a new session if one doesn't exist.
func GetSession(r *http.Request) (*sessions.Session, error) {
	return Store.Get(r, SessionName)
}

// SaveSession saves the session to the response.
func SaveSession(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	return session.Save(r, w)
}

// OperatorID returns the logged-in operator's id, or "" when the request
// carries no authenticated session.
func OperatorID(r *http.Request) string {
	session, err := GetSession(r)
	if err != nil {
		return ""
	}
	if id, ok := session.Values[SessionKeyOperator].(string); ok {
		return id
	}
	return ""
}

// CodeMatches compares the submitted access code against the configured one
// in constant time.
func CodeMatches(submitted, configured string) bool {
	// Hash both sides so length differences leak nothing.
	a := sha256.Sum256([]byte(submitted))
	b := sha256.Sum256([]byte(configured))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
