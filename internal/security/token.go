package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Guest accounts carry a signed token instead of a server-side session, so
// guests cost nothing to store and expire on their own.

var ErrInvalidToken = errors.New("invalid token")

type guestClaims struct {
	jwt.RegisteredClaims
	DisplayName string `json:"name"`
}

// GuestTokenIssuer signs and verifies guest tokens with HMAC-SHA256
type GuestTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewGuestTokenIssuer creates a token issuer with the given signing secret
func NewGuestTokenIssuer(secret string, ttl time.Duration) *GuestTokenIssuer {
	return &GuestTokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for a guest user
func (g *GuestTokenIssuer) Issue(userID int64, displayName string) (string, error) {
	now := time.Now()
	claims := guestClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		DisplayName: displayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify parses a guest token and returns the user ID it was issued for
func (g *GuestTokenIssuer) Verify(tokenString string) (int64, error) {
	claims := &guestClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
