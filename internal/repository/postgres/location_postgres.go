package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"admissions/internal/model"
	"admissions/internal/repository"
)

// Postgres SQLSTATE codes for constraint failures.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// constraintErr maps constraint failures onto the repository sentinels.
func constraintErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", repository.ErrForeignKey, pgErr.ConstraintName)
	}
	return err
}

// execOne runs a write that must touch exactly one row.
func (r *CatalogPostgres) execOne(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return constraintErr(err)
	}
	ok, err := affectedOne(res)
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CatalogPostgres) usage(ctx context.Context, q, id string) (model.Usage, error) {
	var u model.Usage
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.Applications, &u.Children)
	return u, err
}

func (r *CatalogPostgres) CountryRecords(ctx context.Context) ([]model.CountryRecord, error) {
	const q = `
		SELECT c.id, c.name, c.code, c.is_active,
			(SELECT COUNT(*) FROM applications a WHERE a.country_id = c.id),
			(SELECT COUNT(*) FROM states s WHERE s.country_id = c.id)
		FROM countries c
		ORDER BY c.name`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.CountryRecord, error) {
		var c model.CountryRecord
		err := s.Scan(&c.ID, &c.Name, &c.Code, &c.IsActive, &c.StudentCount, &c.StateCount)
		return c, err
	})
}

func (r *CatalogPostgres) CreateCountry(ctx context.Context, c *model.CountryRecord) error {
	const q = `INSERT INTO countries (id, name, code, is_active) VALUES ($1, $2, $3, $4)`
	return r.execOne(ctx, q, c.ID, c.Name, c.Code, c.IsActive)
}

func (r *CatalogPostgres) UpdateCountry(ctx context.Context, c *model.CountryRecord) error {
	const q = `UPDATE countries SET name = $2, code = $3, is_active = $4 WHERE id = $1`
	return r.execOne(ctx, q, c.ID, c.Name, c.Code, c.IsActive)
}

func (r *CatalogPostgres) DeleteCountry(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM countries WHERE id = $1`, id)
}

func (r *CatalogPostgres) CountryUsage(ctx context.Context, id string) (model.Usage, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM applications WHERE country_id = $1),
			(SELECT COUNT(*) FROM states WHERE country_id = $1)`
	return r.usage(ctx, q, id)
}

func (r *CatalogPostgres) StateRecords(ctx context.Context) ([]model.StateRecord, error) {
	const q = `
		SELECT s.id, s.country_id, s.name, s.code, s.is_active,
			(SELECT COUNT(*) FROM applications a WHERE a.state_id = s.id),
			(SELECT COUNT(*) FROM cities c WHERE c.state_id = s.id)
		FROM states s
		ORDER BY s.name`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.StateRecord, error) {
		var st model.StateRecord
		err := s.Scan(&st.ID, &st.CountryID, &st.Name, &st.Code, &st.IsActive, &st.StudentCount, &st.CityCount)
		return st, err
	})
}

func (r *CatalogPostgres) CreateState(ctx context.Context, st *model.StateRecord) error {
	const q = `INSERT INTO states (id, country_id, name, code, is_active) VALUES ($1, $2, $3, $4, $5)`
	return r.execOne(ctx, q, st.ID, st.CountryID, st.Name, st.Code, st.IsActive)
}

func (r *CatalogPostgres) UpdateState(ctx context.Context, st *model.StateRecord) error {
	const q = `UPDATE states SET country_id = $2, name = $3, code = $4, is_active = $5 WHERE id = $1`
	return r.execOne(ctx, q, st.ID, st.CountryID, st.Name, st.Code, st.IsActive)
}

func (r *CatalogPostgres) DeleteState(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM states WHERE id = $1`, id)
}

func (r *CatalogPostgres) StateUsage(ctx context.Context, id string) (model.Usage, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM applications WHERE state_id = $1),
			(SELECT COUNT(*) FROM cities WHERE state_id = $1)`
	return r.usage(ctx, q, id)
}

func (r *CatalogPostgres) CityRecords(ctx context.Context) ([]model.CityRecord, error) {
	const q = `
		SELECT c.id, c.state_id, c.name, c.is_active,
			(SELECT COUNT(*) FROM applications a WHERE a.city_id = c.id)
		FROM cities c
		ORDER BY c.name`
	return queryList(ctx, r.db, q, func(s rowScanner) (model.CityRecord, error) {
		var c model.CityRecord
		err := s.Scan(&c.ID, &c.StateID, &c.Name, &c.IsActive, &c.StudentCount)
		return c, err
	})
}

func (r *CatalogPostgres) CreateCity(ctx context.Context, c *model.CityRecord) error {
	const q = `INSERT INTO cities (id, state_id, name, is_active) VALUES ($1, $2, $3, $4)`
	return r.execOne(ctx, q, c.ID, c.StateID, c.Name, c.IsActive)
}

func (r *CatalogPostgres) UpdateCity(ctx context.Context, c *model.CityRecord) error {
	const q = `UPDATE cities SET state_id = $2, name = $3, is_active = $4 WHERE id = $1`
	return r.execOne(ctx, q, c.ID, c.StateID, c.Name, c.IsActive)
}

func (r *CatalogPostgres) DeleteCity(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM cities WHERE id = $1`, id)
}

// CityUsage reports colleges located in the city as its children.
func (r *CatalogPostgres) CityUsage(ctx context.Context, id string) (model.Usage, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM applications WHERE city_id = $1),
			(SELECT COUNT(*) FROM colleges WHERE city_id = $1)`
	return r.usage(ctx, q, id)
}
