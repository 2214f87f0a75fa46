package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"admissions/internal/apperr"
	"admissions/internal/auth"
	"admissions/internal/model"
)

const (
	emailCodeType = "email"
	emailCodeTTL  = 10 * time.Minute
)

// RegisterInput creates a student account.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10,max=15,numeric"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

type VerifyEmailInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is a successful login.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// AccountService handles registration, email verification and login.
type AccountService interface {
	// Register creates an unverified student and emails a verification code.
	Register(ctx context.Context, in RegisterInput) (Result[*model.User], error)
	VerifyEmail(ctx context.Context, in VerifyEmailInput) error
	Login(ctx context.Context, in LoginInput) (*Session, error)
	Me(ctx context.Context, userID string) (*model.User, error)
}

type accountService struct {
	*core
	tokens  *auth.Tokens
	newCode func() (string, error)
}

func NewAccountService(d Deps, tokens *auth.Tokens) AccountService {
	return &accountService{core: newCore(d), tokens: tokens, newCode: sixDigitCode}
}

func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (Result[*model.User], error) {
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateInput(in); err != nil {
		return Result[*model.User]{}, err
	}
	exists, err := s.Users.ExistsByEmailOrPhone(ctx, in.Email, in.Phone)
	if err != nil {
		return Result[*model.User]{}, err
	}
	if exists {
		return Result[*model.User]{}, apperr.Validation("user already exists with this email or phone")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Result[*model.User]{}, fmt.Errorf("hash password: %w", err)
	}
	now := s.Now()
	u, err := s.Users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Phone:        in.Phone,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		Role:         model.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return Result[*model.User]{}, err
	}

	code, err := s.newCode()
	if err != nil {
		return Result[*model.User]{}, fmt.Errorf("generate code: %w", err)
	}
	if err := s.Users.CreateVerificationCode(ctx, &model.VerificationCode{
		ID:        uuid.NewString(),
		Email:     u.Email,
		Code:      code,
		Type:      emailCodeType,
		ExpiresAt: now.Add(emailCodeTTL),
		CreatedAt: now,
	}); err != nil {
		return Result[*model.User]{}, err
	}

	msgs := s.Composer.Registered(recipientOf(u, nil), code, emailCodeTTL, now)
	return Result[*model.User]{Value: u, Notifications: msgs}, nil
}

func (s *accountService) VerifyEmail(ctx context.Context, in VerifyEmailInput) error {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return err
	}
	vc, err := s.Users.FindUsableCode(ctx, in.Email, in.Code, emailCodeType, s.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Validation("invalid or expired verification code")
	}
	if err != nil {
		return err
	}
	u, err := s.Users.FindByEmail(ctx, in.Email)
	if err != nil {
		return notFoundAs(err, "user not found")
	}
	if err := s.Users.MarkCodeUsed(ctx, vc.ID); err != nil {
		return err
	}
	return s.Users.MarkEmailVerified(ctx, u.ID)
}

func (s *accountService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	u, err := s.Users.FindByEmail(ctx, in.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Unauthenticated("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, apperr.Unauthenticated("invalid email or password")
	}
	if !u.IsEmailVerified {
		return nil, apperr.Validation("please verify your email before logging in")
	}
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *accountService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.user(ctx, userID)
}
