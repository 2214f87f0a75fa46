package repository

import (
	"context"

	"admissions/internal/model"
)

// DocumentRepository defines data access for uploaded documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByApplication returns an application's documents, newest upload first,
	// with the document type name joined in.
	ListByApplication(ctx context.Context, applicationID string) ([]model.Document, error)

	// List returns a filtered page of documents across applications.
	List(ctx context.Context, f DocumentFilter) (*PageResult[model.Document], error)

	// Update writes the file reference and review fields of doc.
	Update(ctx context.Context, doc *model.Document) error
}
