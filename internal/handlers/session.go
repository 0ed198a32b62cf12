package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/themizzi/storefront-e2e/internal/services"
)

const (
	sessionCookie = "sid"
	authCookie    = "auth"
)

type contextKey int

const (
	sessionKey contextKey = iota
	userKey
)

// SessionID returns the browser session id the Sessions middleware assigned.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}

// CurrentUser returns the signed-in shopper, or nil.
func CurrentUser(ctx context.Context) *services.Claims {
	claims, _ := ctx.Value(userKey).(*services.Claims)
	return claims
}

// Sessions assigns every browser a cart session cookie and resolves the
// auth cookie into claims.
type Sessions struct {
	auth *services.AuthService
	log  *log.Logger
}

func NewSessions(auth *services.AuthService, logger *log.Logger) *Sessions {
	return &Sessions{auth: auth, log: logger}
}

func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sid string
		if c, err := r.Cookie(sessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sid = c.Value
			}
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionKey, sid)

		if c, err := r.Cookie(authCookie); err == nil {
			claims, err := s.auth.ParseToken(c.Value)
			if err != nil {
				s.log.Debug("Dropping auth cookie", "err", err)
				clearAuthCookie(w)
			} else {
				ctx = context.WithValue(ctx, userKey, claims)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SignIn issues a token for u and stores it in the auth cookie.
func (s *Sessions) SignIn(w http.ResponseWriter, u *services.User) error {
	token, err := s.auth.IssueToken(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return nil
}

func (s *Sessions) SignOut(w http.ResponseWriter) {
	clearAuthCookie(w)
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// flash is shown once on the next page load of the same session.
type flash struct {
	Coupon *services.CouponResult
	Error  string
}

type flashStore struct {
	mu      sync.Mutex
	entries map[string]flash
}

func newFlashStore() *flashStore {
	return &flashStore{entries: make(map[string]flash)}
}

func (f *flashStore) put(sid string, v flash) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[sid] = v
}

func (f *flashStore) take(sid string) flash {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := f.entries[sid]
	delete(f.entries, sid)
	return v
}

// safeReturn accepts only same-site absolute paths.
func safeReturn(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}
