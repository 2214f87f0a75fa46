package mocks

import (
	"context"

	"admissions/internal/billing"
	"admissions/internal/model"
	"admissions/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockApplicantService struct {
	mock.Mock
}

func (m *MockApplicantService) Profile(ctx context.Context, userID string) (*model.ApplicationView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplicationView), args.Error(1)
}

func (m *MockApplicantService) UpdateProfile(ctx context.Context, userID string, in service.ProfileInput) (*model.ApplicationView, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplicationView), args.Error(1)
}

func (m *MockApplicantService) Summary(ctx context.Context, userID string) (*service.ApplicantSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplicantSummary), args.Error(1)
}

func (m *MockApplicantService) UploadDocument(ctx context.Context, userID string, in service.UploadInput) (service.Result[*model.Document], error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(service.Result[*model.Document]), args.Error(1)
}

func (m *MockApplicantService) ListDocuments(ctx context.Context, userID string) ([]model.Document, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockApplicantService) ReplaceDocument(ctx context.Context, userID, documentID string, in service.UploadInput) (service.Result[*model.Document], error) {
	args := m.Called(ctx, userID, documentID, in)
	return args.Get(0).(service.Result[*model.Document]), args.Error(1)
}

func (m *MockApplicantService) Submit(ctx context.Context, userID string) (service.Result[*model.Application], error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(service.Result[*model.Application]), args.Error(1)
}

func (m *MockApplicantService) PaymentPlan(ctx context.Context, userID string) (*billing.PaymentPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentPlan), args.Error(1)
}

func (m *MockApplicantService) CreatePayment(ctx context.Context, userID string, in service.PaymentInput) (service.Result[*model.Payment], error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(service.Result[*model.Payment]), args.Error(1)
}

func (m *MockApplicantService) VerifyPayment(ctx context.Context, userID string, in service.VerifyPaymentInput) (service.Result[*model.Payment], error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(service.Result[*model.Payment]), args.Error(1)
}

func (m *MockApplicantService) ListPayments(ctx context.Context, userID string) ([]model.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}
