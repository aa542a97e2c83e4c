package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"trackclash/internal/security"
	"trackclash/internal/service"
	"trackclash/internal/validation"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
	csrf         *security.CSRFSigner
	oauthConfig  *oauth2.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, csrf *security.CSRFSigner, googleClientID, googleClientSecret, googleRedirectURL string) *AuthHandler {
	var oauthConfig *oauth2.Config
	if googleClientID != "" && googleClientSecret != "" {
		oauthConfig = &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  googleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
		csrf:         csrf,
		oauthConfig:  oauthConfig,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Register creates a new account and logs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		var ve validation.ValidationError
		switch {
		case errors.As(err, &ve):
			respondWithError(w, http.StatusBadRequest, ve.Error(), "", nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "Email already taken", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to register user", err)
		}
		return
	}

	// Welcome email is best-effort
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = h.emailService.SendWelcomeEmail(ctx, user.Email, user.DisplayName)
	}()

	session, _, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to create session", err)
		return
	}

	h.respondWithSession(w, r, session.ID, session.ExpiresAt, user.ID, user.DisplayName)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to log in", err)
		return
	}

	h.respondWithSession(w, r, session.ID, session.ExpiresAt, user.ID, user.DisplayName)
}

// Logout invalidates the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}
	http.SetCookie(w, security.ExpiredCookie(r, SessionCookieName))
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type guestRequest struct {
	DisplayName string `json:"display_name"`
}

// Guest creates an ephemeral guest account and returns its bearer token
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	var req guestRequest
	// An empty body is fine; the service picks a default name
	_ = json.NewDecoder(r.Body).Decode(&req)

	token, user, err := h.authService.GuestLogin(req.DisplayName)
	if err != nil {
		var ve validation.ValidationError
		if errors.As(err, &ve) {
			respondWithError(w, http.StatusBadRequest, ve.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to create guest", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"token":        token,
		"user_id":      user.ID,
		"display_name": user.DisplayName,
	})
}

// Me returns the authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      user.ID,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"is_guest":     user.IsGuest,
	})
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

// UpdateProfile changes the authenticated user's display name
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	if err := h.authService.UpdateDisplayName(user.ID, req.DisplayName); err != nil {
		var ve validation.ValidationError
		if errors.As(err, &ve) {
			respondWithError(w, http.StatusBadRequest, ve.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to update profile", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      user.ID,
		"display_name": req.DisplayName,
	})
}

// StartOAuth initiates the Google OAuth flow
func (h *AuthHandler) StartOAuth(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", "", nil)
		return
	}

	state := security.NewSessionID()
	h.setTempCookie(w, r, "oauth_state", state, 10*time.Minute)

	authURL := h.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// OAuthCallback handles the Google OAuth callback
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		respondWithError(w, http.StatusBadRequest, "OAuth provider not configured", "", nil)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Missing authorization code", "", nil)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondWithError(w, http.StatusBadRequest, "Invalid OAuth state", "", nil)
		return
	}
	h.clearTempCookie(w, r, "oauth_state")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, err := h.oauthConfig.Exchange(ctx, code)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to exchange OAuth code", "", err)
		return
	}

	userInfo, err := h.fetchGoogleUser(ctx, token)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", err)
		return
	}

	session, _, err := h.authService.OAuthLogin("google", userInfo.Subject, userInfo.Email, userInfo.Name)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", err)
		return
	}

	http.SetCookie(w, security.SessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type oauthUserInfo struct {
	Subject string
	Email   string
	Name    string
}

func (h *AuthHandler) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (oauthUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return oauthUserInfo{}, fmt.Errorf("failed to fetch Google user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return oauthUserInfo{}, fmt.Errorf("failed to fetch Google user info")
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return oauthUserInfo{}, fmt.Errorf("failed to parse Google user info")
	}

	return oauthUserInfo{Subject: payload.ID, Email: payload.Email, Name: payload.Name}, nil
}

func (h *AuthHandler) respondWithSession(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time, userID int64, displayName string) {
	http.SetCookie(w, security.SessionCookie(r, SessionCookieName, sessionID, expiresAt))

	csrfToken, err := h.csrf.Token(sessionID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to generate CSRF token", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":      userID,
		"display_name": displayName,
		"csrf_token":   csrfToken,
	})
}

func (h *AuthHandler) setTempCookie(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}

func (h *AuthHandler) clearTempCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
