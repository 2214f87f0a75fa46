package mocks

import (
	"context"

	"admissions/internal/model"
	"admissions/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in service.RegisterInput) (service.Result[*model.User], error) {
	args := m.Called(ctx, in)
	return args.Get(0).(service.Result[*model.User]), args.Error(1)
}

func (m *MockAccountService) VerifyEmail(ctx context.Context, in service.VerifyEmailInput) error {
	args := m.Called(ctx, in)
	return args.Error(0)
}

func (m *MockAccountService) Login(ctx context.Context, in service.LoginInput) (*service.Session, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAccountService) Me(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
