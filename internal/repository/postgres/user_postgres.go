package postgres

import (
	"context"
	"database/sql"
	"time"

	"admissions/internal/model"
	"admissions/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, email, phone, first_name, last_name, password_hash,
	is_email_verified, role, created_at, updated_at`

func scanUser(s rowScanner) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	if err := s.Scan(
		&u.ID, &u.Email, &u.Phone, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsEmailVerified, &role, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return &u, nil
}

// Create inserts a user and returns the stored row.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, email, phone, first_name, last_name, password_hash,
			is_email_verified, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns
	return scanUser(r.db.QueryRowContext(ctx, q,
		u.ID, u.Email, u.Phone, u.FirstName, u.LastName, u.PasswordHash,
		u.IsEmailVerified, string(u.Role), u.CreatedAt, u.UpdatedAt,
	))
}

// FindByID fetches a user by ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a user by email, case-insensitively.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// ExistsByEmailOrPhone reports whether an account already uses either identifier.
func (r *UserPostgres) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1) OR phone = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, email, phone).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateContact writes the name and phone of a user.
func (r *UserPostgres) UpdateContact(ctx context.Context, u *model.User) error {
	const q = `
		UPDATE users SET first_name = $2, last_name = $3, phone = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.FirstName, u.LastName, u.Phone, u.UpdatedAt)
	return err
}

// MarkEmailVerified flags the user's email as verified.
func (r *UserPostgres) MarkEmailVerified(ctx context.Context, userID string) error {
	const q = `UPDATE users SET is_email_verified = true, updated_at = now() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, userID)
	return err
}

// CreateVerificationCode stores a one-time code.
func (r *UserPostgres) CreateVerificationCode(ctx context.Context, vc *model.VerificationCode) error {
	const q = `
		INSERT INTO verification_codes (id, email, code, type, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, q,
		vc.ID, vc.Email, vc.Code, vc.Type, vc.ExpiresAt, vc.IsUsed, vc.CreatedAt,
	)
	return err
}

// FindUsableCode returns the newest matching code that is unused and unexpired at now.
func (r *UserPostgres) FindUsableCode(ctx context.Context, email, code, codeType string, now time.Time) (*model.VerificationCode, error) {
	const q = `
		SELECT id, email, code, type, expires_at, is_used, created_at
		FROM verification_codes
		WHERE lower(email) = lower($1) AND code = $2 AND type = $3
		  AND is_used = false AND expires_at > $4
		ORDER BY created_at DESC
		LIMIT 1`
	var vc model.VerificationCode
	if err := r.db.QueryRowContext(ctx, q, email, code, codeType, now).Scan(
		&vc.ID, &vc.Email, &vc.Code, &vc.Type, &vc.ExpiresAt, &vc.IsUsed, &vc.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &vc, nil
}

// MarkCodeUsed consumes a verification code.
func (r *UserPostgres) MarkCodeUsed(ctx context.Context, id string) error {
	const q = `UPDATE verification_codes SET is_used = true WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
