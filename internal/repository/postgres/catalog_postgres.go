package postgres

import (
	"context"
	"database/sql"

	"admissions/internal/model"
	"admissions/internal/repository"
)

// CatalogPostgres is a PostgreSQL implementation of repository.CatalogRepository.
type CatalogPostgres struct {
	db *sql.DB
}

// NewCatalogPostgres creates a new CatalogPostgres repository.
func NewCatalogPostgres(db *sql.DB) *CatalogPostgres {
	return &CatalogPostgres{db: db}
}

var _ repository.CatalogRepository = (*CatalogPostgres)(nil)

// queryList runs q and scans every row with scan.
func queryList[T any](ctx context.Context, db *sql.DB, q string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		it, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogPostgres) Countries(ctx context.Context) ([]model.Country, error) {
	const q = `SELECT id, name, code FROM countries WHERE is_active ORDER BY name`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.Country, error) {
		var c model.Country
		err := s.Scan(&c.ID, &c.Name, &c.Code)
		return c, err
	})
}

func (r *CatalogPostgres) States(ctx context.Context, countryID string) ([]model.State, error) {
	const q = `SELECT id, country_id, name, code FROM states WHERE is_active AND country_id = $1 ORDER BY name`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.State, error) {
		var st model.State
		err := s.Scan(&st.ID, &st.CountryID, &st.Name, &st.Code)
		return st, err
	}, countryID)
}

func (r *CatalogPostgres) Cities(ctx context.Context, stateID string) ([]model.City, error) {
	const q = `SELECT id, state_id, name FROM cities WHERE is_active AND state_id = $1 ORDER BY name`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.City, error) {
		var c model.City
		err := s.Scan(&c.ID, &c.StateID, &c.Name)
		return c, err
	}, stateID)
}

func (r *CatalogPostgres) Colleges(ctx context.Context) ([]model.College, error) {
	const q = `SELECT id, name, code, address, city_id FROM colleges WHERE is_active ORDER BY name`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.College, error) {
		var (
			c    model.College
			city sql.NullString
		)
		err := s.Scan(&c.ID, &c.Name, &c.Code, &c.Address, &city)
		c.CityID = idPtr(city)
		return c, err
	})
}

func (r *CatalogPostgres) Branches(ctx context.Context) ([]model.Branch, error) {
	const q = `SELECT id, name, code, description FROM branches WHERE is_active ORDER BY name`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.Branch, error) {
		var b model.Branch
		err := s.Scan(&b.ID, &b.Name, &b.Code, &b.Description)
		return b, err
	})
}

const tradeColumns = `id, branch_id, name, code, description, duration`

func scanTrade(s rowScanner) (model.Trade, error) {
	var t model.Trade
	err := s.Scan(&t.ID, &t.BranchID, &t.Name, &t.Code, &t.Description, &t.Duration)
	return t, err
}

func (r *CatalogPostgres) Trades(ctx context.Context, branchID string) ([]model.Trade, error) {
	const q = `SELECT ` + tradeColumns + ` FROM trades WHERE is_active AND branch_id = $1 ORDER BY name`
	return queryList(ctx, r.db, q, scanTrade, branchID)
}

func (r *CatalogPostgres) FindTrade(ctx context.Context, id string) (*model.Trade, error) {
	const q = `SELECT ` + tradeColumns + ` FROM trades WHERE id = $1`
	t, err := scanTrade(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const documentTypeColumns = `id, name, description, is_required, max_file_size, allowed_types, sort_order, is_active`

func scanDocumentType(s rowScanner) (model.DocumentType, error) {
	var dt model.DocumentType
	err := s.Scan(&dt.ID, &dt.Name, &dt.Description, &dt.IsRequired,
		&dt.MaxFileSize, &dt.AllowedTypes, &dt.SortOrder, &dt.IsActive)
	return dt, err
}

func (r *CatalogPostgres) DocumentTypes(ctx context.Context) ([]model.DocumentType, error) {
	const q = `SELECT ` + documentTypeColumns + ` FROM document_types WHERE is_active ORDER BY sort_order, name`
	return queryList(ctx, r.db, q, scanDocumentType)
}

func (r *CatalogPostgres) FindDocumentType(ctx context.Context, id string) (*model.DocumentType, error) {
	const q = `SELECT ` + documentTypeColumns + ` FROM document_types WHERE id = $1 AND is_active`
	dt, err := scanDocumentType(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

func (r *CatalogPostgres) FeeItems(ctx context.Context, tradeID string) ([]model.FeeItem, error) {
	const q = `
		SELECT id, trade_id, fee_type, amount, currency, is_active, academic_year
		FROM fees
		WHERE trade_id = $1
		ORDER BY fee_type`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.FeeItem, error) {
		var f model.FeeItem
		err := s.Scan(&f.ID, &f.TradeID, &f.FeeType, &f.Amount, &f.Currency, &f.IsActive, &f.AcademicYear)
		return f, err
	}, tradeID)
}
