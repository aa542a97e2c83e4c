package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"trackclash/internal/models"
	"trackclash/internal/security"
	"trackclash/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	rateLimiter *security.RateLimiter
	csrf        *security.CSRFSigner
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, rateLimiter *security.RateLimiter, csrf *security.CSRFSigner) *Middleware {
	return &Middleware{
		authService: authService,
		rateLimiter: rateLimiter,
		csrf:        csrf,
	}
}

// RequireAuth requires either a valid session cookie or a guest bearer
// token, and puts the resolved user on the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.resolveUser(r)
		if user == nil {
			// Clear a dead session cookie so the client stops sending it
			if _, err := r.Cookie(SessionCookieName); err == nil {
				http.SetCookie(w, security.ExpiredCookie(r, SessionCookieName))
			}
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the per-IP request rate
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.rateLimiter.Allow(ip) {
			respondWithError(w, http.StatusTooManyRequests, "Too many requests", "", nil)
			return
		}
		next(w, r)
	}
}

// RequireCSRF checks the X-CSRF-Token header on mutating requests that
// authenticate with a session cookie. Guest bearer tokens are not cookie
// credentials and skip the check.
func (m *Middleware) RequireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			next(w, r)
			return
		}

		token := r.Header.Get("X-CSRF-Token")
		if !m.csrf.Verify(cookie.Value, token) {
			respondWithError(w, http.StatusForbidden, "Invalid CSRF token", "", nil)
			return
		}
		next(w, r)
	}
}

func (m *Middleware) resolveUser(r *http.Request) *models.User {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if user, err := m.authService.ValidateSession(cookie.Value); err == nil {
			return user
		}
	}

	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token := strings.TrimPrefix(auth, "Bearer ")
		if user, err := m.authService.ValidateGuestToken(token); err == nil {
			return user
		}
	}

	return nil
}

// UserFromContext retrieves the authenticated user set by RequireAuth
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}

// Logging logs every request with its duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
