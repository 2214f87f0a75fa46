package repository

import (
	"context"

	"admissions/internal/model"
)

// CatalogRepository reads master data. Only active rows are returned, except
// by the *Records listings which back the admin console.
type CatalogRepository interface {
	Countries(ctx context.Context) ([]model.Country, error)
	States(ctx context.Context, countryID string) ([]model.State, error)
	Cities(ctx context.Context, stateID string) ([]model.City, error)
	Colleges(ctx context.Context) ([]model.College, error)
	Branches(ctx context.Context) ([]model.Branch, error)
	Trades(ctx context.Context, branchID string) ([]model.Trade, error)

	// FindTrade returns a trade by its ID, or sql.ErrNoRows.
	FindTrade(ctx context.Context, id string) (*model.Trade, error)

	DocumentTypes(ctx context.Context) ([]model.DocumentType, error)

	// FindDocumentType returns an active document type, or sql.ErrNoRows.
	FindDocumentType(ctx context.Context, id string) (*model.DocumentType, error)

	// FeeItems returns every fee line of a trade, active or not.
	FeeItems(ctx context.Context, tradeID string) ([]model.FeeItem, error)

	// Location administration. Updates and deletes return sql.ErrNoRows for an
	// unknown id; constraint failures surface as ErrDuplicate or ErrForeignKey.
	CountryRecords(ctx context.Context) ([]model.CountryRecord, error)
	CreateCountry(ctx context.Context, c *model.CountryRecord) error
	UpdateCountry(ctx context.Context, c *model.CountryRecord) error
	DeleteCountry(ctx context.Context, id string) error
	// CountryUsage counts the applications and states referencing a country.
	CountryUsage(ctx context.Context, id string) (model.Usage, error)

	StateRecords(ctx context.Context) ([]model.StateRecord, error)
	CreateState(ctx context.Context, st *model.StateRecord) error
	UpdateState(ctx context.Context, st *model.StateRecord) error
	DeleteState(ctx context.Context, id string) error
	// StateUsage counts the applications and cities referencing a state.
	StateUsage(ctx context.Context, id string) (model.Usage, error)

	CityRecords(ctx context.Context) ([]model.CityRecord, error)
	CreateCity(ctx context.Context, c *model.CityRecord) error
	UpdateCity(ctx context.Context, c *model.CityRecord) error
	DeleteCity(ctx context.Context, id string) error
	// CityUsage counts the applications and colleges referencing a city.
	CityUsage(ctx context.Context, id string) (model.Usage, error)
}
