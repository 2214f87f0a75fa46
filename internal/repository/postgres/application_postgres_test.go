package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"admissions/internal/model"
	"admissions/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicationCols = []string{
	"id", "user_id", "application_number",
	"country_id", "state_id", "city_id", "college_id", "branch_id", "trade_id",
	"date_of_birth", "gender", "category", "father_name", "mother_name", "guardian_name",
	"address", "pincode", "status", "submitted_at", "approved_at", "rejected_at",
	"rejection_reason", "created_at", "updated_at",
}

func applicationRow(id, status string, tradeID any, submittedAt any) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, "user-1", "APP1700000000000123",
		nil, nil, nil, nil, nil, tradeID,
		nil, "female", nil, "Ravi", nil, nil,
		"12 MG Road", "560001", status, submittedAt, nil, nil,
		nil, now, now,
	}
}

func TestApplicationPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	now := time.Now().UTC()
	app := model.NewApplication("app-1", "user-1", "APP1700000000000123", now)

	mock.ExpectQuery("INSERT INTO applications AS a").
		WithArgs("app-1", "user-1", "APP1700000000000123", "draft", now, now).
		WillReturnRows(sqlmock.NewRows(applicationCols).
			AddRow(applicationRow("app-1", "draft", nil, nil)...))

	got, err := repo.Create(context.Background(), app)

	require.NoError(t, err)
	assert.Equal(t, "app-1", got.ID)
	assert.Equal(t, model.ApplicationDraft, got.Status)
	assert.Nil(t, got.TradeID)
	assert.Equal(t, "female", got.Gender)
	assert.Empty(t, got.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationPostgres_FindByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	submitted := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applications a WHERE a.user_id = ?").
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows(applicationCols).
				AddRow(applicationRow("app-1", "submitted", "trade-1", submitted)...))

		got, err := repo.FindByUserID(context.Background(), "user-1")

		require.NoError(t, err)
		require.NotNil(t, got.TradeID)
		assert.Equal(t, "trade-1", *got.TradeID)
		assert.Equal(t, submitted, *got.SubmittedAt)
		assert.Nil(t, got.ApprovedAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applications a WHERE a.user_id = ?").
			WithArgs("user-2").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByUserID(context.Background(), "user-2")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	now := time.Now().UTC()
	app := model.NewApplication("app-1", "user-1", "APP1", now)
	require.NoError(t, app.Submit(now))

	t.Run("guard matched", func(t *testing.T) {
		mock.ExpectExec("UPDATE applications SET (.+) WHERE id = \\$1 AND status = \\$2").
			WithArgs("app-1", "draft", "submitted", now, nil, nil, nil, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatus(context.Background(), app, model.ApplicationDraft)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("lost race", func(t *testing.T) {
		mock.ExpectExec("UPDATE applications SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateStatus(context.Background(), app, model.ApplicationDraft)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationPostgres_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	trade := "trade-1"
	app := model.NewApplication("app-1", "user-1", "APP1", time.Now())
	app.TradeID = &trade
	app.Address = "12 MG Road"

	mock.ExpectExec("UPDATE applications SET (.+) WHERE id = \\$1 AND status = 'draft'").
		WithArgs("app-1", nil, nil, nil, nil, nil, "trade-1",
			nil, nil, nil, nil, nil, nil, "12 MG Road", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateProfile(context.Background(), app)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	f := repository.ApplicationFilter{Search: "asha", Page: repository.PageQuery{Limit: 20, Offset: 40}}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM applications a JOIN users u").
		WithArgs("", "asha").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

	cols := append(append([]string{}, applicationCols...),
		"first_name", "last_name", "email", "phone", "trade_name", "branch_name")
	row := append(applicationRow("app-1", "submitted", "trade-1", time.Now()),
		"Asha", "Rao", "asha@example.com", "9999999999", "Electrician", "Engineering")
	mock.ExpectQuery("SELECT (.+) FROM applications a JOIN users u (.+) LIMIT (.+) OFFSET").
		WithArgs("", "asha", 20, 40).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(row...))

	res, err := repo.List(context.Background(), f)

	require.NoError(t, err)
	assert.Equal(t, 41, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Asha", res.Items[0].FirstName)
	assert.Equal(t, "Electrician", res.Items[0].TradeName)
	assert.Equal(t, "app-1", res.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationPostgres_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM applications GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("draft", 4).
			AddRow("submitted", 3).
			AddRow("approved", 2))

	counts, err := repo.CountByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, counts[model.ApplicationSubmitted])
	assert.Equal(t, 0, counts[model.ApplicationRejected])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationPostgres_MonthlyCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationPostgres(db)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT date_trunc\\('month', (.+) FROM applications WHERE submitted_at >= \\$1 GROUP BY month ORDER BY month").
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"month", "count", "approved"}).
			AddRow(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 5, 2).
			AddRow(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 1, 0))

	counts, err := repo.MonthlyCounts(context.Background(), since)

	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, time.March, counts[0].Month.Month())
	assert.Equal(t, 5, counts[0].Submitted)
	assert.Equal(t, 2, counts[0].Approved)
	assert.Equal(t, 0, counts[1].Approved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
