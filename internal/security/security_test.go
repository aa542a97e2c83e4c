package security

import (
	"testing"
	"time"
)

func TestHashPassword(t *testing.T) {
	password := "testPassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "" {
		t.Error("HashPassword() returned empty string")
	}

	if hash == password {
		t.Error("HashPassword() returned the plaintext password")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword() rejected the correct password")
	}

	if CheckPassword("wrongPassword", hash) {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestGuestToken(t *testing.T) {
	issuer := NewGuestTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42, "Anonymous Llama")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() userID = %d, want 42", userID)
	}
}

func TestGuestTokenWrongSecret(t *testing.T) {
	issuer := NewGuestTokenIssuer("test-secret", time.Hour)
	other := NewGuestTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue(42, "Anonymous Llama")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify() with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestGuestTokenExpired(t *testing.T) {
	issuer := NewGuestTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(42, "Anonymous Llama")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify() of expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestGuestTokenGarbage(t *testing.T) {
	issuer := NewGuestTokenIssuer("test-secret", time.Hour)

	if _, err := issuer.Verify("not.a.token"); err != ErrInvalidToken {
		t.Errorf("Verify() of garbage error = %v, want ErrInvalidToken", err)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    1,
		burst:    3,
	}

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed within burst", i+1)
		}
	}

	if rl.Allow("10.0.0.1") {
		t.Error("request beyond burst should be denied")
	}

	// A different IP has its own bucket
	if !rl.Allow("10.0.0.2") {
		t.Error("different IP should be allowed")
	}
}

func TestCSRFSigner(t *testing.T) {
	signer := NewCSRFSigner("test-secret")

	token, err := signer.Token("session-1")
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	if !signer.Verify("session-1", token) {
		t.Error("Verify() rejected a valid token")
	}

	if signer.Verify("session-2", token) {
		t.Error("Verify() accepted a token for a different session")
	}

	if signer.Verify("session-1", "bogus") {
		t.Error("Verify() accepted a bogus token")
	}

	if _, err := signer.Token(""); err == nil {
		t.Error("Token() accepted an empty session ID")
	}
}
