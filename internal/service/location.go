package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"admissions/internal/apperr"
	"admissions/internal/model"
	"admissions/internal/repository"
)

// CountryInput creates or replaces a country. IsActive defaults to true.
type CountryInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Code     string `json:"code" validate:"required,max=10"`
	IsActive *bool  `json:"isActive"`
}

type StateInput struct {
	CountryID string `json:"countryId" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,max=100"`
	Code      string `json:"code" validate:"required,max=10"`
	IsActive  *bool  `json:"isActive"`
}

type CityInput struct {
	StateID  string `json:"stateId" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,max=100"`
	IsActive *bool  `json:"isActive"`
}

func activeOrDefault(p *bool) bool {
	return p == nil || *p
}

// writeErr translates repository failures of a create or update on a
// master record named kind whose parent is identified by parent.
func writeErr(err error, kind, parent string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("%s not found", kind)
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Validation("a %s with this code already exists", kind)
	case errors.Is(err, repository.ErrForeignKey):
		return apperr.Validation("%s does not exist", parent)
	}
	return err
}

// deleteGuarded removes a master record once usage shows nothing points at it.
func deleteGuarded(ctx context.Context, id, kind, children string,
	usage func(context.Context, string) (model.Usage, error),
	del func(context.Context, string) error,
) error {
	if err := required("id", id); err != nil {
		return err
	}
	u, err := usage(ctx, id)
	if err != nil {
		return err
	}
	if u.Applications > 0 {
		return apperr.Validation("cannot delete %s: %d applications reference it", kind, u.Applications)
	}
	if u.Children > 0 {
		return apperr.Validation("cannot delete %s: %d %s reference it", kind, u.Children, children)
	}
	err = del(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperr.NotFound("%s not found", kind)
	case errors.Is(err, repository.ErrForeignKey):
		return apperr.Validation("cannot delete %s: it is still referenced", kind)
	}
	return err
}

func (s *catalogService) CountryRecords(ctx context.Context) ([]model.CountryRecord, error) {
	return s.repo.CountryRecords(ctx)
}

func (s *catalogService) CreateCountry(ctx context.Context, in CountryInput) (*model.CountryRecord, error) {
	return s.saveCountry(ctx, uuid.NewString(), in, s.repo.CreateCountry)
}

func (s *catalogService) UpdateCountry(ctx context.Context, id string, in CountryInput) (*model.CountryRecord, error) {
	if err := required("id", id); err != nil {
		return nil, err
	}
	return s.saveCountry(ctx, id, in, s.repo.UpdateCountry)
}

func (s *catalogService) saveCountry(ctx context.Context, id string, in CountryInput,
	write func(context.Context, *model.CountryRecord) error,
) (*model.CountryRecord, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	rec := &model.CountryRecord{
		Country: model.Country{
			ID:   id,
			Name: strings.TrimSpace(in.Name),
			Code: strings.ToUpper(strings.TrimSpace(in.Code)),
		},
		IsActive: activeOrDefault(in.IsActive),
	}
	if err := writeErr(write(ctx, rec), "country", "country"); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *catalogService) DeleteCountry(ctx context.Context, id string) error {
	return deleteGuarded(ctx, id, "country", "states", s.repo.CountryUsage, s.repo.DeleteCountry)
}

func (s *catalogService) StateRecords(ctx context.Context) ([]model.StateRecord, error) {
	return s.repo.StateRecords(ctx)
}

func (s *catalogService) CreateState(ctx context.Context, in StateInput) (*model.StateRecord, error) {
	return s.saveState(ctx, uuid.NewString(), in, s.repo.CreateState)
}

func (s *catalogService) UpdateState(ctx context.Context, id string, in StateInput) (*model.StateRecord, error) {
	if err := required("id", id); err != nil {
		return nil, err
	}
	return s.saveState(ctx, id, in, s.repo.UpdateState)
}

func (s *catalogService) saveState(ctx context.Context, id string, in StateInput,
	write func(context.Context, *model.StateRecord) error,
) (*model.StateRecord, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	rec := &model.StateRecord{
		State: model.State{
			ID:        id,
			CountryID: in.CountryID,
			Name:      strings.TrimSpace(in.Name),
			Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		},
		IsActive: activeOrDefault(in.IsActive),
	}
	if err := writeErr(write(ctx, rec), "state", "country"); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *catalogService) DeleteState(ctx context.Context, id string) error {
	return deleteGuarded(ctx, id, "state", "cities", s.repo.StateUsage, s.repo.DeleteState)
}

func (s *catalogService) CityRecords(ctx context.Context) ([]model.CityRecord, error) {
	return s.repo.CityRecords(ctx)
}

func (s *catalogService) CreateCity(ctx context.Context, in CityInput) (*model.CityRecord, error) {
	return s.saveCity(ctx, uuid.NewString(), in, s.repo.CreateCity)
}

func (s *catalogService) UpdateCity(ctx context.Context, id string, in CityInput) (*model.CityRecord, error) {
	if err := required("id", id); err != nil {
		return nil, err
	}
	return s.saveCity(ctx, id, in, s.repo.UpdateCity)
}

func (s *catalogService) saveCity(ctx context.Context, id string, in CityInput,
	write func(context.Context, *model.CityRecord) error,
) (*model.CityRecord, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	rec := &model.CityRecord{
		City: model.City{
			ID:      id,
			StateID: in.StateID,
			Name:    strings.TrimSpace(in.Name),
		},
		IsActive: activeOrDefault(in.IsActive),
	}
	if err := writeErr(write(ctx, rec), "city", "state"); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteCity refuses while applications or colleges are located in the city.
func (s *catalogService) DeleteCity(ctx context.Context, id string) error {
	return deleteGuarded(ctx, id, "city", "colleges", s.repo.CityUsage, s.repo.DeleteCity)
}
