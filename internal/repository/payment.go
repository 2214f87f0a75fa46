package repository

import (
	"context"

	"admissions/internal/model"
)

// PaymentRepository defines data access for the payment ledger.
type PaymentRepository interface {
	// Create inserts a payment row and returns the stored record.
	Create(ctx context.Context, p *model.Payment) (*model.Payment, error)

	// FindByID returns a payment by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Payment, error)

	// ListByApplication returns the full payment history of an application, oldest first.
	ListByApplication(ctx context.Context, applicationID string) ([]model.Payment, error)

	// UpdateStatus writes status, transaction id and paid_at only if the stored status
	// still equals from. It reports false when the guard did not match.
	UpdateStatus(ctx context.Context, p *model.Payment, from model.PaymentStatus) (bool, error)

	// List returns a filtered page of payments joined with the applicant.
	List(ctx context.Context, f PaymentFilter) (*PageResult[model.Payment], error)

	// Stats aggregates revenue and counts per status.
	Stats(ctx context.Context) (*model.PaymentStats, error)
}
