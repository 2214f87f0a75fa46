package repository

import (
	"context"
	"time"

	"admissions/internal/model"
)

// UserRepository defines data access for accounts and their verification codes.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmailOrPhone reports whether either identifier is taken.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)

	// UpdateContact writes name and phone.
	UpdateContact(ctx context.Context, u *model.User) error

	MarkEmailVerified(ctx context.Context, userID string) error

	CreateVerificationCode(ctx context.Context, vc *model.VerificationCode) error

	// FindUsableCode returns an unused code of the given type that has not expired at now,
	// or sql.ErrNoRows.
	FindUsableCode(ctx context.Context, email, code, codeType string, now time.Time) (*model.VerificationCode, error)

	MarkCodeUsed(ctx context.Context, id string) error
}
