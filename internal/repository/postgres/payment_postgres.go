package postgres

import (
	"context"
	"database/sql"

	"admissions/internal/model"
	"admissions/internal/repository"
)

// PaymentPostgres is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentPostgres struct {
	db *sql.DB
}

// NewPaymentPostgres creates a new PaymentPostgres repository.
func NewPaymentPostgres(db *sql.DB) *PaymentPostgres {
	return &PaymentPostgres{db: db}
}

var _ repository.PaymentRepository = (*PaymentPostgres)(nil)

const paymentColumns = `
	p.id, p.application_id, p.amount, p.currency, p.payment_method, p.transaction_id,
	p.status, p.installment_number, p.total_installments, p.paid_at, p.created_at`

func scanPayment(s rowScanner, extra ...any) (*model.Payment, error) {
	var (
		p             model.Payment
		label, status string
		txn           sql.NullString
		paidAt        sql.NullTime
	)
	dest := []any{
		&p.ID, &p.ApplicationID, &p.Amount, &p.Currency, &label, &txn,
		&status, &p.InstallmentNumber, &p.TotalInstallments, &paidAt, &p.CreatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	p.Method, p.ReceivedBy = model.ParseMethodLabel(label)
	p.TransactionID = txn.String
	p.Status = model.PaymentStatus(status)
	p.PaidAt = timePtr(paidAt)
	return &p, nil
}

// Create inserts a payment. The receiving person of a cash payment is folded into the method label.
func (r *PaymentPostgres) Create(ctx context.Context, p *model.Payment) (*model.Payment, error) {
	const q = `
		INSERT INTO payments AS p (id, application_id, amount, currency, payment_method, transaction_id,
			status, installment_number, total_installments, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING` + paymentColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.ApplicationID,
		p.Amount,
		p.Currency,
		p.Label(),
		nullString(p.TransactionID),
		string(p.Status),
		p.InstallmentNumber,
		p.TotalInstallments,
		nullTime(p.PaidAt),
		p.CreatedAt,
	)
	return scanPayment(row)
}

// FindByID fetches a single payment by its ID.
func (r *PaymentPostgres) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	const q = `SELECT` + paymentColumns + `
		FROM payments p
		WHERE p.id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, q, id))
}

// ListByApplication returns every payment of an application in creation order.
func (r *PaymentPostgres) ListByApplication(ctx context.Context, applicationID string) ([]model.Payment, error) {
	const q = `SELECT` + paymentColumns + `
		FROM payments p
		WHERE p.application_id = $1
		ORDER BY p.created_at ASC, p.id ASC`
	rows, err := r.db.QueryContext(ctx, q, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus settles a payment guarded by its previous status.
func (r *PaymentPostgres) UpdateStatus(ctx context.Context, p *model.Payment, from model.PaymentStatus) (bool, error) {
	const q = `
		UPDATE payments SET status = $3, transaction_id = $4, paid_at = $5
		WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, q,
		p.ID,
		string(from),
		string(p.Status),
		nullString(p.TransactionID),
		nullTime(p.PaidAt),
	)
	if err != nil {
		return false, err
	}
	return affectedOne(res)
}

// List returns payments with applicant details using LIMIT/OFFSET pagination.
func (r *PaymentPostgres) List(ctx context.Context, f repository.PaymentFilter) (*repository.PageResult[model.Payment], error) {
	const from = `
		FROM payments p
		JOIN applications a ON a.id = p.application_id
		JOIN users u ON u.id = a.user_id
		WHERE ($1 = '' OR p.status = $1)
		  AND ($2 = '' OR a.application_number ILIKE '%' || $2 || '%'
		       OR (u.first_name || ' ' || u.last_name) ILIKE '%' || $2 || '%'
		       OR p.transaction_id ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, string(f.Status), f.Search).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT` + paymentColumns + `,
			a.application_number, u.first_name || ' ' || u.last_name, u.email` + from + `
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, qList, string(f.Status), f.Search, f.Page.Limit, f.Page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Payment, 0)
	for rows.Next() {
		var number, name, email string
		p, err := scanPayment(rows, &number, &name, &email)
		if err != nil {
			return nil, err
		}
		p.ApplicationNumber, p.StudentName, p.StudentEmail = number, name, email
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Payment]{
		Items: items,
		Total: total,
	}, nil
}

// Stats returns revenue from completed payments and a count per status.
func (r *PaymentPostgres) Stats(ctx context.Context) (*model.PaymentStats, error) {
	const q = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM payments`
	var s model.PaymentStats
	if err := r.db.QueryRowContext(ctx, q).Scan(
		&s.TotalRevenue,
		&s.PendingPayments,
		&s.CompletedPayments,
		&s.FailedPayments,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
