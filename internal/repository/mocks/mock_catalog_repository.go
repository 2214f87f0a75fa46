package mocks

import (
	"context"

	"admissions/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Countries(ctx context.Context) ([]model.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Country), args.Error(1)
}

func (m *MockCatalogRepository) States(ctx context.Context, countryID string) ([]model.State, error) {
	args := m.Called(ctx, countryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.State), args.Error(1)
}

func (m *MockCatalogRepository) Cities(ctx context.Context, stateID string) ([]model.City, error) {
	args := m.Called(ctx, stateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.City), args.Error(1)
}

func (m *MockCatalogRepository) Colleges(ctx context.Context) ([]model.College, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.College), args.Error(1)
}

func (m *MockCatalogRepository) Branches(ctx context.Context) ([]model.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Branch), args.Error(1)
}

func (m *MockCatalogRepository) Trades(ctx context.Context, branchID string) ([]model.Trade, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Trade), args.Error(1)
}

func (m *MockCatalogRepository) FindTrade(ctx context.Context, id string) (*model.Trade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Trade), args.Error(1)
}

func (m *MockCatalogRepository) DocumentTypes(ctx context.Context) ([]model.DocumentType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentType), args.Error(1)
}

func (m *MockCatalogRepository) FindDocumentType(ctx context.Context, id string) (*model.DocumentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockCatalogRepository) FeeItems(ctx context.Context, tradeID string) ([]model.FeeItem, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FeeItem), args.Error(1)
}

func (m *MockCatalogRepository) CountryRecords(ctx context.Context) ([]model.CountryRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CountryRecord), args.Error(1)
}

func (m *MockCatalogRepository) CreateCountry(ctx context.Context, r *model.CountryRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateCountry(ctx context.Context, r *model.CountryRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteCountry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CountryUsage(ctx context.Context, id string) (model.Usage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Usage), args.Error(1)
}

func (m *MockCatalogRepository) StateRecords(ctx context.Context) ([]model.StateRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StateRecord), args.Error(1)
}

func (m *MockCatalogRepository) CreateState(ctx context.Context, r *model.StateRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateState(ctx context.Context, r *model.StateRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteState(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) StateUsage(ctx context.Context, id string) (model.Usage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Usage), args.Error(1)
}

func (m *MockCatalogRepository) CityRecords(ctx context.Context) ([]model.CityRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityRecord), args.Error(1)
}

func (m *MockCatalogRepository) CreateCity(ctx context.Context, r *model.CityRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCatalogRepository) UpdateCity(ctx context.Context, r *model.CityRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteCity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogRepository) CityUsage(ctx context.Context, id string) (model.Usage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Usage), args.Error(1)
}
