package repository

import (
	"database/sql"
	"fmt"
	"time"

	"trackclash/internal/database"
	"trackclash/internal/models"
)

// UserRepository handles database operations for users and sessions
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, display_name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), is_guest, created_at, updated_at`

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(email, passwordHash, displayName string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, display_name, is_guest)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, displayName, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := &models.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return user, nil
}

// CreateOAuthUser inserts a user authenticated by an external provider
func (r *UserRepository) CreateOAuthUser(email, displayName, provider, subject string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, display_name, oauth_provider, oauth_subject, is_guest)
		VALUES (?, '', ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, displayName, provider, subject, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}

	user := &models.User{
		ID:            id,
		Email:         email,
		DisplayName:   displayName,
		OAuthProvider: provider,
		OAuthSubject:  subject,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	return user, nil
}

// CreateGuestUser inserts an ephemeral guest account. Guests have no email
// and authenticate with a signed token instead of a session.
func (r *UserRepository) CreateGuestUser(displayName string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, display_name, is_guest)
		VALUES ('', '', ?, ?)
	`
	id, err := r.db.ExecReturningID(query, displayName, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest user: %w", err)
	}

	user := &models.User{
		ID:          id,
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = ? AND is_guest = ?
	`
	return r.scanUser(r.db.QueryRow(query, email, false))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetUserByOAuthSubject retrieves a user by provider and subject claim
func (r *UserRepository) GetUserByOAuthSubject(provider, subject string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE oauth_provider = ? AND oauth_subject = ?
	`
	return r.scanUser(r.db.QueryRow(query, provider, subject))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.IsGuest,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// LinkOAuthProvider attaches a provider identity to an existing account
func (r *UserRepository) LinkOAuthProvider(id int64, provider, subject string) error {
	query := `
		UPDATE users
		SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, provider, subject, id)
	if err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}
	return nil
}

// UpdateDisplayName changes a user's display name
func (r *UserRepository) UpdateDisplayName(id int64, displayName string) error {
	query := `
		UPDATE users
		SET display_name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, displayName, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// CreateSession creates a new session for a user
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session := &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	return session, nil
}

// GetSession retrieves a session by ID
func (r *UserRepository) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT id, user_id, expires_at, created_at
		FROM sessions
		WHERE id = ?
	`
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteSession removes a session from the database
func (r *UserRepository) DeleteSession(sessionID string) error {
	query := "DELETE FROM sessions WHERE id = ?"
	_, err := r.db.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	query := "DELETE FROM sessions WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
