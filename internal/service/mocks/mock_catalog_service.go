package mocks

import (
	"context"

	"admissions/internal/model"
	"admissions/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Countries(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Country), args.Error(1)
}

func (m *MockCatalogService) States(ctx context.Context, countryID string) ([]model.State, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.State), args.Error(1)
}

func (m *MockCatalogService) Cities(ctx context.Context, stateID string) ([]model.City, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.City), args.Error(1)
}

func (m *MockCatalogService) Colleges(ctx context.Context) ([]model.College, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.College), args.Error(1)
}

func (m *MockCatalogService) Branches(ctx context.Context) ([]model.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Branch), args.Error(1)
}

func (m *MockCatalogService) Trades(ctx context.Context, branchID string) ([]model.Trade, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trade), args.Error(1)
}

func (m *MockCatalogService) DocumentTypes(ctx context.Context) ([]model.DocumentType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentType), args.Error(1)
}

func (m *MockCatalogService) FeeStructure(ctx context.Context, tradeID string) (*service.FeeStructure, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FeeStructure), args.Error(1)
}

func (m *MockCatalogService) CountryRecords(ctx context.Context) ([]model.CountryRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CountryRecord), args.Error(1)
}

func (m *MockCatalogService) CreateCountry(ctx context.Context, in service.CountryInput) (*model.CountryRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CountryRecord), args.Error(1)
}

func (m *MockCatalogService) UpdateCountry(ctx context.Context, id string, in service.CountryInput) (*model.CountryRecord, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CountryRecord), args.Error(1)
}

func (m *MockCatalogService) DeleteCountry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) StateRecords(ctx context.Context) ([]model.StateRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StateRecord), args.Error(1)
}

func (m *MockCatalogService) CreateState(ctx context.Context, in service.StateInput) (*model.StateRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StateRecord), args.Error(1)
}

func (m *MockCatalogService) UpdateState(ctx context.Context, id string, in service.StateInput) (*model.StateRecord, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StateRecord), args.Error(1)
}

func (m *MockCatalogService) DeleteState(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogService) CityRecords(ctx context.Context) ([]model.CityRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityRecord), args.Error(1)
}

func (m *MockCatalogService) CreateCity(ctx context.Context, in service.CityInput) (*model.CityRecord, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityRecord), args.Error(1)
}

func (m *MockCatalogService) UpdateCity(ctx context.Context, id string, in service.CityInput) (*model.CityRecord, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CityRecord), args.Error(1)
}

func (m *MockCatalogService) DeleteCity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
