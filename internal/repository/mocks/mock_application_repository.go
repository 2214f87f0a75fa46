package mocks

import (
	"context"
	"time"

	"admissions/internal/model"
	"admissions/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	args := m.Called(ctx, app)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id string) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByUserID(ctx context.Context, userID string) (*model.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateProfile(ctx context.Context, app *model.Application) (bool, error) {
	args := m.Called(ctx, app)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, app *model.Application, from model.ApplicationStatus) (bool, error) {
	args := m.Called(ctx, app, from)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, f repository.ApplicationFilter) (*repository.PageResult[model.ApplicationView], error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ApplicationView]), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ApplicationStatus]int), args.Error(1)
}

func (m *MockApplicationRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthCount, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthCount), args.Error(1)
}
