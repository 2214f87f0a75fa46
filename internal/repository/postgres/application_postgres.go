package postgres

import (
	"context"
	"database/sql"
	"time"

	"admissions/internal/model"
	"admissions/internal/repository"
)

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
type ApplicationPostgres struct {
	db *sql.DB
}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres(db *sql.DB) *ApplicationPostgres {
	return &ApplicationPostgres{db: db}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

const applicationColumns = `
	a.id, a.user_id, a.application_number,
	a.country_id, a.state_id, a.city_id, a.college_id, a.branch_id, a.trade_id,
	a.date_of_birth, a.gender, a.category, a.father_name, a.mother_name, a.guardian_name,
	a.address, a.pincode, a.status, a.submitted_at, a.approved_at, a.rejected_at,
	a.rejection_reason, a.created_at, a.updated_at`

// applicationFilterWhere is shared by the list and count queries; $1 is status, $2 the search term.
const applicationFilterWhere = `
	WHERE a.status <> 'draft'
	  AND ($1 = '' OR a.status = $1)
	  AND ($2 = '' OR a.application_number ILIKE '%' || $2 || '%'
	       OR (u.first_name || ' ' || u.last_name) ILIKE '%' || $2 || '%')`

func scanApplication(s rowScanner, extra ...any) (*model.Application, error) {
	var (
		a                                            model.Application
		country, state, city, college, branch, trade sql.NullString
		gender, category, father, mother, guardian   sql.NullString
		address, pincode, reason                     sql.NullString
		dob, submittedAt, approvedAt, rejectedAt     sql.NullTime
		status                                       string
	)
	dest := []any{
		&a.ID, &a.UserID, &a.ApplicationNumber,
		&country, &state, &city, &college, &branch, &trade,
		&dob, &gender, &category, &father, &mother, &guardian,
		&address, &pincode, &status, &submittedAt, &approvedAt, &rejectedAt,
		&reason, &a.CreatedAt, &a.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	a.CountryID, a.StateID, a.CityID = idPtr(country), idPtr(state), idPtr(city)
	a.CollegeID, a.BranchID, a.TradeID = idPtr(college), idPtr(branch), idPtr(trade)
	a.DateOfBirth = timePtr(dob)
	a.Gender, a.Category = gender.String, category.String
	a.FatherName, a.MotherName, a.GuardianName = father.String, mother.String, guardian.String
	a.Address, a.Pincode = address.String, pincode.String
	a.Status = model.ApplicationStatus(status)
	a.SubmittedAt, a.ApprovedAt, a.RejectedAt = timePtr(submittedAt), timePtr(approvedAt), timePtr(rejectedAt)
	a.RejectionReason = reason.String
	return &a, nil
}

// Create inserts a new draft application row and returns the stored record.
func (r *ApplicationPostgres) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	const q = `
		INSERT INTO applications AS a (id, user_id, application_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING` + applicationColumns
	row := r.db.QueryRowContext(ctx, q,
		app.ID,
		app.UserID,
		app.ApplicationNumber,
		string(app.Status),
		app.CreatedAt,
		app.UpdatedAt,
	)
	return scanApplication(row)
}

// FindByID fetches a single application by its ID.
func (r *ApplicationPostgres) FindByID(ctx context.Context, id string) (*model.Application, error) {
	const q = `SELECT` + applicationColumns + `
		FROM applications a
		WHERE a.id = $1`
	return scanApplication(r.db.QueryRowContext(ctx, q, id))
}

// FindByUserID fetches the application owned by a user.
func (r *ApplicationPostgres) FindByUserID(ctx context.Context, userID string) (*model.Application, error) {
	const q = `SELECT` + applicationColumns + `
		FROM applications a
		WHERE a.user_id = $1`
	return scanApplication(r.db.QueryRowContext(ctx, q, userID))
}

// UpdateProfile writes the applicant-editable fields of a draft application.
func (r *ApplicationPostgres) UpdateProfile(ctx context.Context, app *model.Application) (bool, error) {
	const q = `
		UPDATE applications SET
			country_id = $2, state_id = $3, city_id = $4, college_id = $5, branch_id = $6, trade_id = $7,
			date_of_birth = $8, gender = $9, category = $10, father_name = $11, mother_name = $12,
			guardian_name = $13, address = $14, pincode = $15, updated_at = $16
		WHERE id = $1 AND status = 'draft'`
	res, err := r.db.ExecContext(ctx, q,
		app.ID,
		nullID(app.CountryID), nullID(app.StateID), nullID(app.CityID),
		nullID(app.CollegeID), nullID(app.BranchID), nullID(app.TradeID),
		nullTime(app.DateOfBirth),
		nullString(app.Gender), nullString(app.Category),
		nullString(app.FatherName), nullString(app.MotherName), nullString(app.GuardianName),
		nullString(app.Address), nullString(app.Pincode),
		app.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return affectedOne(res)
}

// UpdateStatus persists a state machine transition guarded by the previous status.
func (r *ApplicationPostgres) UpdateStatus(ctx context.Context, app *model.Application, from model.ApplicationStatus) (bool, error) {
	const q = `
		UPDATE applications SET
			status = $3, submitted_at = $4, approved_at = $5, rejected_at = $6,
			rejection_reason = $7, updated_at = $8
		WHERE id = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, q,
		app.ID,
		string(from),
		string(app.Status),
		nullTime(app.SubmittedAt),
		nullTime(app.ApprovedAt),
		nullTime(app.RejectedAt),
		nullString(app.RejectionReason),
		app.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return affectedOne(res)
}

// List returns submitted, approved and rejected applications with applicant details.
func (r *ApplicationPostgres) List(ctx context.Context, f repository.ApplicationFilter) (*repository.PageResult[model.ApplicationView], error) {
	const qCount = `
		SELECT COUNT(*)
		FROM applications a
		JOIN users u ON u.id = a.user_id` + applicationFilterWhere
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, string(f.Status), f.Search).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT` + applicationColumns + `,
			u.first_name, u.last_name, u.email, u.phone,
			COALESCE(t.name, ''), COALESCE(b.name, '')
		FROM applications a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN trades t ON t.id = a.trade_id
		LEFT JOIN branches b ON b.id = a.branch_id` + applicationFilterWhere + `
		ORDER BY a.submitted_at DESC NULLS LAST, a.id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.QueryContext(ctx, qList, string(f.Status), f.Search, f.Page.Limit, f.Page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ApplicationView, 0)
	for rows.Next() {
		var v model.ApplicationView
		a, err := scanApplication(rows,
			&v.FirstName, &v.LastName, &v.Email, &v.Phone, &v.TradeName, &v.BranchName)
		if err != nil {
			return nil, err
		}
		v.Application = *a
		items = append(items, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ApplicationView]{
		Items: items,
		Total: total,
	}, nil
}

// CountByStatus groups applications by status.
func (r *ApplicationPostgres) CountByStatus(ctx context.Context) (map[model.ApplicationStatus]int, error) {
	const q = `SELECT status, COUNT(*) FROM applications GROUP BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.ApplicationStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[model.ApplicationStatus(status)] = n
	}
	return out, rows.Err()
}

// MonthlyCounts buckets submissions by calendar month in UTC.
func (r *ApplicationPostgres) MonthlyCounts(ctx context.Context, since time.Time) ([]repository.MonthCount, error) {
	const q = `
		SELECT date_trunc('month', submitted_at AT TIME ZONE 'UTC') AS month,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'approved')
		FROM applications
		WHERE submitted_at >= $1
		GROUP BY month
		ORDER BY month`
	rows, err := r.db.QueryContext(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.MonthCount, 0, 6)
	for rows.Next() {
		var mc repository.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Submitted, &mc.Approved); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}
