package repository

import (
	"context"
	"time"

	"admissions/internal/model"
)

// ApplicationRepository defines data access for student applications.
type ApplicationRepository interface {
	// Create inserts a draft application. The application number must be unique.
	Create(ctx context.Context, app *model.Application) (*model.Application, error)

	// FindByID returns an application by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Application, error)

	// FindByUserID returns the application owned by userID, or sql.ErrNoRows.
	FindByUserID(ctx context.Context, userID string) (*model.Application, error)

	// UpdateProfile writes the profile fields while the application is still a draft.
	// It reports false when no draft row matched.
	UpdateProfile(ctx context.Context, app *model.Application) (bool, error)

	// UpdateStatus writes status, transition timestamps and rejection reason only if the
	// stored status still equals from. It reports false when another writer got there first.
	UpdateStatus(ctx context.Context, app *model.Application, from model.ApplicationStatus) (bool, error)

	// List returns non-draft applications, newest submission first.
	List(ctx context.Context, f ApplicationFilter) (*PageResult[model.ApplicationView], error)

	// CountByStatus returns the number of applications in each status.
	CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int, error)

	// MonthlyCounts groups applications submitted at or after since by month,
	// oldest first. Months without submissions are omitted.
	MonthlyCounts(ctx context.Context, since time.Time) ([]MonthCount, error)
}
