package postgres

import (
	"context"
	"database/sql"

	"admissions/internal/model"
	"admissions/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `
	d.id, d.application_id, d.document_type_id,
	d.file_name, d.original_name, d.file_path, d.file_size, d.mime_type,
	d.uploaded_at, d.status, d.approved_by, d.approved_at, d.rejected_at,
	d.rejection_reason, d.admin_notes`

func scanDocument(s rowScanner, extra ...any) (*model.Document, error) {
	var (
		d                      model.Document
		status                 string
		approvedBy             sql.NullString
		approvedAt, rejectedAt sql.NullTime
		reason, notes          sql.NullString
	)
	dest := []any{
		&d.ID, &d.ApplicationID, &d.DocumentTypeID,
		&d.File.FileName, &d.File.OriginalName, &d.File.FilePath, &d.File.FileSize, &d.File.MimeType,
		&d.UploadedAt, &status, &approvedBy, &approvedAt, &rejectedAt,
		&reason, &notes,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	d.Status = model.DocumentStatus(status)
	d.ApprovedBy = idPtr(approvedBy)
	d.ApprovedAt, d.RejectedAt = timePtr(approvedAt), timePtr(rejectedAt)
	d.RejectionReason, d.AdminNotes = reason.String, notes.String
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents AS d (id, application_id, document_type_id, file_name, original_name,
			file_path, file_size, mime_type, uploaded_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.ApplicationID,
		doc.DocumentTypeID,
		doc.File.FileName,
		doc.File.OriginalName,
		doc.File.FilePath,
		doc.File.FileSize,
		doc.File.MimeType,
		doc.UploadedAt,
		string(doc.Status),
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT` + documentColumns + `
		FROM documents d
		WHERE d.id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByApplication returns an application's documents with their type name, newest first.
func (r *DocumentPostgres) ListByApplication(ctx context.Context, applicationID string) ([]model.Document, error) {
	const q = `SELECT` + documentColumns + `, dt.name
		FROM documents d
		JOIN document_types dt ON dt.id = d.document_type_id
		WHERE d.application_id = $1
		ORDER BY d.uploaded_at DESC, d.id DESC`
	rows, err := r.db.QueryContext(ctx, q, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var typeName string
		d, err := scanDocument(rows, &typeName)
		if err != nil {
			return nil, err
		}
		d.DocumentTypeName = typeName
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// List returns documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter) (*repository.PageResult[model.Document], error) {
	const where = `
		WHERE ($1 = '' OR d.status = $1)
		  AND ($2 = '' OR d.application_id::text = $2)`

	// Count total rows
	const qCount = `SELECT COUNT(*) FROM documents d` + where
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, string(f.Status), f.ApplicationID).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `SELECT` + documentColumns + `,
			dt.name, a.application_number, u.first_name || ' ' || u.last_name
		FROM documents d
		JOIN document_types dt ON dt.id = d.document_type_id
		JOIN applications a ON a.id = d.application_id
		JOIN users u ON u.id = a.user_id` + where + `
		ORDER BY d.uploaded_at DESC, d.id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, qList, string(f.Status), f.ApplicationID, f.Page.Limit, f.Page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var typeName, appNumber, student string
		d, err := scanDocument(rows, &typeName, &appNumber, &student)
		if err != nil {
			return nil, err
		}
		d.DocumentTypeName, d.ApplicationNumber, d.StudentName = typeName, appNumber, student
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// Update writes the file reference and review state of a document.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) error {
	const q = `
		UPDATE documents SET
			file_name = $2, original_name = $3, file_path = $4, file_size = $5, mime_type = $6,
			uploaded_at = $7, status = $8, approved_by = $9, approved_at = $10, rejected_at = $11,
			rejection_reason = $12, admin_notes = $13
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		doc.ID,
		doc.File.FileName,
		doc.File.OriginalName,
		doc.File.FilePath,
		doc.File.FileSize,
		doc.File.MimeType,
		doc.UploadedAt,
		string(doc.Status),
		nullID(doc.ApprovedBy),
		nullTime(doc.ApprovedAt),
		nullTime(doc.RejectedAt),
		nullString(doc.RejectionReason),
		nullString(doc.AdminNotes),
	)
	if err != nil {
		return err
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
