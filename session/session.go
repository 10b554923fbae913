// Package session owns the per-visitor authentication state: the bearer token
// issued by the remote API, the username and the role. The browser only ever
// holds an HMAC-signed session id; token and role live in a durable store so
// a restart of this process does not log everyone out.
//
// The package is the single writer of session state. Login and registration
// create it, logout and the 401/403 teardown path clear it; every other
// consumer reads it from the request context.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"gestion-formations/gate"
)

type ctxKey string

const (
	cookieName    = "session"
	sessionCtxKey = ctxKey("session")
	cookieTTL     = 14 * 24 * time.Hour
)

// Session is the authenticated state of one visitor.
type Session struct {
	SID      string
	Token    string
	Username string
	Role     gate.Role
}

// Authenticated reports whether the session carries a usable token.
// A token whose JWT exp claim has passed counts as absent.
func (s Session) Authenticated() bool {
	if s.Token == "" {
		return false
	}
	return !TokenExpired(s.Token, time.Now())
}

// TokenExpired inspects the token's exp claim without verifying the
// signature; verification belongs to the remote API. Tokens that are not
// JWT-shaped are treated as unexpired and left for the server to judge.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}

// Store persists sessions across process restarts.
type Store interface {
	Save(ctx context.Context, s Session) error
	Find(ctx context.Context, sid string) (Session, bool, error)
	Delete(ctx context.Context, sid string) error
}

// Secret returns SESSION_SECRET or a default dev value.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

// Manager signs cookies and talks to the store.
type Manager struct {
	store  Store
	secret []byte
}

// NewManager creates a Manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{store: store, secret: []byte(Secret())}
}

func (m *Manager) sign(sid string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sid))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Create persists a new session and sets the signed cookie.
func (m *Manager) Create(ctx context.Context, w http.ResponseWriter, token, username string, role gate.Role) (Session, error) {
	s := Session{SID: uuid.NewString(), Token: token, Username: username, Role: role}
	if err := m.store.Save(ctx, s); err != nil {
		return Session{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    s.SID + "." + m.sign(s.SID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieTTL),
	})
	return s, nil
}

// Clear tears the session down: store record and cookie go together, so the
// caller sees a single operation. Safe to call for anonymous requests.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if sid, ok := m.sidFromRequest(r); ok {
		// Best effort: an unreachable store must not keep the user logged in.
		_ = m.store.Delete(ctx, sid)
	}
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// sidFromRequest validates the cookie signature and returns the session id.
func (m *Manager) sidFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return "", false
	}
	sid, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(m.sign(sid))) {
		return "", false
	}
	return sid, true
}

// Load resolves the request's session from cookie and store.
func (m *Manager) Load(r *http.Request) (Session, bool) {
	sid, ok := m.sidFromRequest(r)
	if !ok {
		return Session{}, false
	}
	s, found, err := m.store.Find(r.Context(), sid)
	if err != nil || !found {
		return Session{}, false
	}
	return s, true
}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// FromContext extracts the session attached by Middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(Session)
	return s, ok
}

// RoleFromContext is a shorthand for gated rendering; anonymous requests get
// RoleUnknown.
func RoleFromContext(ctx context.Context) gate.Role {
	s, ok := FromContext(ctx)
	if !ok {
		return gate.RoleUnknown
	}
	return s.Role
}

// Middleware attaches the session to the request context if present.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := m.Load(r); ok {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth redirects anonymous or expired sessions to /login. The guard is
// a redirect decision, never an error: the protected handler simply does not
// run.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := FromContext(r.Context())
		if !ok || !s.Authenticated() {
			// Drop any stale cookie and store record on the way out.
			m.Clear(r.Context(), w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
