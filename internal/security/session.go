package security

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// NewSessionID returns a fresh opaque session identifier. UUIDs keep the
// IDs unguessable without any coordination between server replicas.
func NewSessionID() string {
	return uuid.New().String()
}

// IsSecureRequest reports whether the request arrived over HTTPS, either
// directly or through a TLS-terminating proxy that set X-Forwarded-Proto.
func IsSecureRequest(r *http.Request) bool {
	return r.TLS != nil ||
		r.Header.Get("X-Forwarded-Proto") == "https" ||
		r.URL.Scheme == "https"
}

// SessionCookie builds the player's login cookie. SameSite is Lax so the
// cookie survives the OAuth callback's top-level redirect.
func SessionCookie(r *http.Request, name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds a cookie that tells the browser to drop the named
// cookie immediately.
func ExpiredCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
	}
}
