package service

import (
	"context"
	"strings"

	"admissions/internal/apperr"
	"admissions/internal/billing"
	"admissions/internal/model"
	"admissions/internal/repository"
)

// FeeStructure is a trade's active fee schedule and its total.
type FeeStructure struct {
	TradeID     string          `json:"tradeId"`
	Items       []model.FeeItem `json:"items"`
	TotalAmount model.Money     `json:"totalAmount"`
}

// CatalogService serves master data to applicants and lets admins maintain
// the country, state and city tables.
type CatalogService interface {
	Countries(ctx context.Context) ([]model.Country, error)
	States(ctx context.Context, countryID string) ([]model.State, error)
	Cities(ctx context.Context, stateID string) ([]model.City, error)
	Colleges(ctx context.Context) ([]model.College, error)
	Branches(ctx context.Context) ([]model.Branch, error)
	Trades(ctx context.Context, branchID string) ([]model.Trade, error)
	DocumentTypes(ctx context.Context) ([]model.DocumentType, error)
	FeeStructure(ctx context.Context, tradeID string) (*FeeStructure, error)

	CountryRecords(ctx context.Context) ([]model.CountryRecord, error)
	CreateCountry(ctx context.Context, in CountryInput) (*model.CountryRecord, error)
	UpdateCountry(ctx context.Context, id string, in CountryInput) (*model.CountryRecord, error)
	// DeleteCountry refuses while applications or states still reference the country.
	DeleteCountry(ctx context.Context, id string) error

	StateRecords(ctx context.Context) ([]model.StateRecord, error)
	CreateState(ctx context.Context, in StateInput) (*model.StateRecord, error)
	UpdateState(ctx context.Context, id string, in StateInput) (*model.StateRecord, error)
	DeleteState(ctx context.Context, id string) error

	CityRecords(ctx context.Context) ([]model.CityRecord, error)
	CreateCity(ctx context.Context, in CityInput) (*model.CityRecord, error)
	UpdateCity(ctx context.Context, id string, in CityInput) (*model.CityRecord, error)
	DeleteCity(ctx context.Context, id string) error
}

type catalogService struct {
	repo repository.CatalogRepository
	fees *FeeCalculator
}

func NewCatalogService(repo repository.CatalogRepository) CatalogService {
	return &catalogService{repo: repo, fees: NewFeeCalculator(repo)}
}

func required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperr.Validation("%s is required", name)
	}
	return nil
}

func (s *catalogService) Countries(ctx context.Context) ([]model.Country, error) {
	return s.repo.Countries(ctx)
}

func (s *catalogService) States(ctx context.Context, countryID string) ([]model.State, error) {
	if err := required("countryId", countryID); err != nil {
		return nil, err
	}
	return s.repo.States(ctx, countryID)
}

func (s *catalogService) Cities(ctx context.Context, stateID string) ([]model.City, error) {
	if err := required("stateId", stateID); err != nil {
		return nil, err
	}
	return s.repo.Cities(ctx, stateID)
}

func (s *catalogService) Colleges(ctx context.Context) ([]model.College, error) {
	return s.repo.Colleges(ctx)
}

func (s *catalogService) Branches(ctx context.Context) ([]model.Branch, error) {
	return s.repo.Branches(ctx)
}

func (s *catalogService) Trades(ctx context.Context, branchID string) ([]model.Trade, error) {
	if err := required("branchId", branchID); err != nil {
		return nil, err
	}
	return s.repo.Trades(ctx, branchID)
}

func (s *catalogService) DocumentTypes(ctx context.Context) ([]model.DocumentType, error) {
	return s.repo.DocumentTypes(ctx)
}

func (s *catalogService) FeeStructure(ctx context.Context, tradeID string) (*FeeStructure, error) {
	if err := required("tradeId", tradeID); err != nil {
		return nil, err
	}
	items, err := s.fees.ActiveItems(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	return &FeeStructure{TradeID: tradeID, Items: items, TotalAmount: billing.FeeTotal(items)}, nil
}
