package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admissions/internal/apperr"
	"admissions/internal/auth"
	"admissions/internal/model"
	"admissions/internal/notify"
)

func newAccount(t *testing.T, f *fixture) (*accountService, *auth.Tokens) {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)
	svc := NewAccountService(f.deps(), tokens).(*accountService)
	svc.newCode = func() (string, error) { return "123456", nil }
	return svc, tokens
}

func TestAccountService_Register(t *testing.T) {
	in := RegisterInput{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     " Asha@Example.com ",
		Phone:     "9876543210",
		Password:  "secret123",
	}

	t.Run("existing account", func(t *testing.T) {
		f := newFixture()
		svc, _ := newAccount(t, f)
		f.users.On("ExistsByEmailOrPhone", mock.Anything, "asha@example.com", "9876543210").Return(true, nil)

		_, err := svc.Register(context.Background(), in)

		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "user already exists with this email or phone", apperr.MessageOf(err))
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates unverified student", func(t *testing.T) {
		f := newFixture()
		svc, _ := newAccount(t, f)
		f.users.On("ExistsByEmailOrPhone", mock.Anything, "asha@example.com", "9876543210").Return(false, nil)
		f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "asha@example.com" && u.Role == model.RoleStudent && !u.IsEmailVerified &&
				auth.CheckPassword(u.PasswordHash, "secret123")
		})).Return(&model.User{ID: "user-1", Email: "asha@example.com", FirstName: "Asha", LastName: "Rao", Role: model.RoleStudent}, nil)
		f.users.On("CreateVerificationCode", mock.Anything, mock.MatchedBy(func(vc *model.VerificationCode) bool {
			return vc.Code == "123456" && vc.Type == "email" && vc.ExpiresAt.Equal(testNow.Add(10*time.Minute))
		})).Return(nil)

		res, err := svc.Register(context.Background(), in)

		require.NoError(t, err)
		assert.Equal(t, "user-1", res.Value.ID)
		require.Len(t, res.Notifications, 2)
		assert.Equal(t, notify.KindVerificationCode, res.Notifications[0].Kind)
		assert.Contains(t, res.Notifications[0].HTML, "123456")
		assert.Equal(t, "admin@example.com", res.Notifications[1].To)
		f.assertExpectations(t)
	})

	t.Run("short password", func(t *testing.T) {
		f := newFixture()
		svc, _ := newAccount(t, f)
		bad := in
		bad.Password = "123"

		_, err := svc.Register(context.Background(), bad)

		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Contains(t, apperr.MessageOf(err), "password")
	})
}

func TestAccountService_VerifyEmail(t *testing.T) {
	t.Run("invalid code", func(t *testing.T) {
		f := newFixture()
		svc, _ := newAccount(t, f)
		f.users.On("FindUsableCode", mock.Anything, "asha@example.com", "000000", "email", testNow).Return(nil, sql.ErrNoRows)

		err := svc.VerifyEmail(context.Background(), VerifyEmailInput{Email: "asha@example.com", Code: "000000"})

		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "invalid or expired verification code", apperr.MessageOf(err))
	})

	t.Run("marks verified", func(t *testing.T) {
		f := newFixture()
		svc, _ := newAccount(t, f)
		f.users.On("FindUsableCode", mock.Anything, "asha@example.com", "123456", "email", testNow).
			Return(&model.VerificationCode{ID: "vc-1"}, nil)
		f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(testUser(), nil)
		f.users.On("MarkCodeUsed", mock.Anything, "vc-1").Return(nil)
		f.users.On("MarkEmailVerified", mock.Anything, "user-1").Return(nil)

		err := svc.VerifyEmail(context.Background(), VerifyEmailInput{Email: "ASHA@example.com", Code: "123456"})

		require.NoError(t, err)
		f.assertExpectations(t)
	})
}

func TestAccountService_Login(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	user := func(verified bool) *model.User {
		u := testUser()
		u.PasswordHash = hash
		u.IsEmailVerified = verified
		return u
	}

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture()
		svc, _ := newAccount(t, f)
		f.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, sql.ErrNoRows)

		_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"})

		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newFixture()
		svc, _ := newAccount(t, f)
		f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(user(true), nil)

		_, err := svc.Login(context.Background(), LoginInput{Email: "asha@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
		assert.Equal(t, "invalid email or password", apperr.MessageOf(err))
	})

	t.Run("unverified", func(t *testing.T) {
		f := newFixture()
		svc, _ := newAccount(t, f)
		f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(user(false), nil)

		_, err := svc.Login(context.Background(), LoginInput{Email: "asha@example.com", Password: "secret123"})

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("issues token", func(t *testing.T) {
		f := newFixture()
		svc, tokens := newAccount(t, f)
		f.users.On("FindByEmail", mock.Anything, "asha@example.com").Return(user(true), nil)

		sess, err := svc.Login(context.Background(), LoginInput{Email: "Asha@Example.com", Password: "secret123"})

		require.NoError(t, err)
		claims, err := tokens.Parse(sess.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, model.RoleStudent, claims.Role)
		assert.Equal(t, "user-1", sess.User.ID)
	})
}
