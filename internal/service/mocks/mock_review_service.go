package mocks

import (
	"context"

	"admissions/internal/model"
	"admissions/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListApplications(ctx context.Context, q service.ApplicationQuery) (*service.ListResult[model.ApplicationView], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.ApplicationView]), args.Error(1)
}

func (m *MockReviewService) Detail(ctx context.Context, applicationID string) (*service.ApplicationDetail, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicationDetail), args.Error(1)
}

func (m *MockReviewService) Approve(ctx context.Context, applicationID string) (service.Result[*model.Application], error) {
	args := m.Called(ctx, applicationID)
	return args.Get(0).(service.Result[*model.Application]), args.Error(1)
}

func (m *MockReviewService) Reject(ctx context.Context, applicationID, reason string) (service.Result[*model.Application], error) {
	args := m.Called(ctx, applicationID, reason)
	return args.Get(0).(service.Result[*model.Application]), args.Error(1)
}

func (m *MockReviewService) ListDocuments(ctx context.Context, q service.DocumentQuery) (*service.ListResult[model.Document], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Document]), args.Error(1)
}

func (m *MockReviewService) ApproveDocument(ctx context.Context, reviewerID, documentID, notes string) (*model.Document, error) {
	args := m.Called(ctx, reviewerID, documentID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockReviewService) RejectDocument(ctx context.Context, documentID, reason string) (*model.Document, error) {
	args := m.Called(ctx, documentID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockReviewService) ListPayments(ctx context.Context, q service.PaymentQuery) (*service.ListResult[model.Payment], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Payment]), args.Error(1)
}

func (m *MockReviewService) PaymentStats(ctx context.Context) (*model.PaymentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentStats), args.Error(1)
}

func (m *MockReviewService) RecordCashPayment(ctx context.Context, in service.CashPaymentInput) (service.Result[*model.Payment], error) {
	args := m.Called(ctx, in)
	return args.Get(0).(service.Result[*model.Payment]), args.Error(1)
}

func (m *MockReviewService) DashboardStats(ctx context.Context) (*service.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

func (m *MockReviewService) StatusDistribution(ctx context.Context) ([]service.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.StatusCount), args.Error(1)
}

func (m *MockReviewService) MonthlyData(ctx context.Context) ([]service.MonthlyCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.MonthlyCount), args.Error(1)
}

func (m *MockReviewService) RecentApplications(ctx context.Context) ([]model.ApplicationView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ApplicationView), args.Error(1)
}
