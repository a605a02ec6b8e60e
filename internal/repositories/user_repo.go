package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"motorsonline/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
		INSERT INTO users (name, email, password, phone, role, google_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Email, user.Password, user.Phone, user.Role, user.GoogleID,
	)
	if err != nil {
		return models.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	query := `
		SELECT id, name, email, phone, role, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
		SELECT id, name, email, password, phone, role, google_id, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Role, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	return count > 0, err
}

// AttachGoogleID links a Google subject to an existing account on first
// Google sign-in.
func (r *UserRepository) AttachGoogleID(ctx context.Context, userID int, googleID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET google_id = ?, updated_at = NOW() WHERE id = ?`, googleID, userID)
	return err
}

func (r *UserRepository) SetSession(ctx context.Context, session models.Session) error {
	query := `
		INSERT INTO sessions (user_id, role, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE role = VALUES(role), refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
	`
	_, err := r.DB.ExecContext(ctx, query, session.UserID, session.Role, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	query := `
		SELECT user_id, role, refresh_token, expires_at
		FROM sessions
		WHERE refresh_token = ?
	`
	var s models.Session
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(&s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, nil
	}
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE refresh_token = ?`, refreshToken)
	return err
}

func (r *UserRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
