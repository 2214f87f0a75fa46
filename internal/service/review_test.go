package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admissions/internal/apperr"
	"admissions/internal/model"
	"admissions/internal/notify"
	"admissions/internal/repository"
)

func newReview(f *fixture) ReviewService {
	return NewReviewService(f.deps())
}

func TestReviewService_Approve(t *testing.T) {
	t.Run("draft cannot be approved", func(t *testing.T) {
		f := newFixture()
		f.apps.On("FindByID", mock.Anything, "app-1").Return(draftApp(), nil)

		_, err := newReview(f).Approve(context.Background(), "app-1")

		assert.ErrorIs(t, err, apperr.ErrInvalidState)
		f.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("submitted is approved", func(t *testing.T) {
		f := newFixture()
		app := submittedApp()
		f.apps.On("FindByID", mock.Anything, "app-1").Return(app, nil)
		f.apps.On("UpdateStatus", mock.Anything, app, model.ApplicationSubmitted).Return(true, nil)
		f.users.On("FindByID", mock.Anything, "user-1").Return(testUser(), nil)

		res, err := newReview(f).Approve(context.Background(), "app-1")

		require.NoError(t, err)
		assert.Equal(t, model.ApplicationApproved, res.Value.Status)
		require.NotNil(t, res.Value.ApprovedAt)
		require.Len(t, res.Notifications, 2)
		assert.Equal(t, notify.KindApplicationApproved, res.Notifications[0].Kind)
		f.assertExpectations(t)
	})

	t.Run("missing application", func(t *testing.T) {
		f := newFixture()
		f.apps.On("FindByID", mock.Anything, "nope").Return(nil, sql.ErrNoRows)

		_, err := newReview(f).Approve(context.Background(), "nope")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestReviewService_Reject(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		f := newFixture()
		f.apps.On("FindByID", mock.Anything, "app-1").Return(submittedApp(), nil)

		_, err := newReview(f).Reject(context.Background(), "app-1", "   ")

		assert.ErrorIs(t, err, apperr.ErrValidation)
		f.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("submitted is rejected", func(t *testing.T) {
		f := newFixture()
		app := submittedApp()
		f.apps.On("FindByID", mock.Anything, "app-1").Return(app, nil)
		f.apps.On("UpdateStatus", mock.Anything, app, model.ApplicationSubmitted).Return(true, nil)
		f.users.On("FindByID", mock.Anything, "user-1").Return(testUser(), nil)

		res, err := newReview(f).Reject(context.Background(), "app-1", "incomplete marksheet")

		require.NoError(t, err)
		assert.Equal(t, model.ApplicationRejected, res.Value.Status)
		assert.Equal(t, "incomplete marksheet", res.Value.RejectionReason)
		require.Len(t, res.Notifications, 2)
		assert.Contains(t, res.Notifications[0].HTML, "incomplete marksheet")
		assert.Equal(t, notify.KindAdminRejected, res.Notifications[1].Kind)
		f.assertExpectations(t)
	})

	t.Run("approved is terminal", func(t *testing.T) {
		f := newFixture()
		app := submittedApp()
		app.Status = model.ApplicationApproved
		f.apps.On("FindByID", mock.Anything, "app-1").Return(app, nil)

		_, err := newReview(f).Reject(context.Background(), "app-1", "late")

		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})
}

func TestReviewService_Documents(t *testing.T) {
	t.Run("reject without reason does not load", func(t *testing.T) {
		f := newFixture()

		_, err := newReview(f).RejectDocument(context.Background(), "doc-1", "")

		assert.ErrorIs(t, err, apperr.ErrValidation)
		f.assertExpectations(t)
	})

	t.Run("reject stores reason verbatim", func(t *testing.T) {
		f := newFixture()
		doc := rejectedDoc()
		doc.Status = model.DocumentApproved
		doc.RejectionReason = ""
		doc.AdminNotes = "looks fine"
		f.docs.On("FindByID", mock.Anything, "doc-1").Return(doc, nil)
		f.docs.On("Update", mock.Anything, doc).Return(nil)

		got, err := newReview(f).RejectDocument(context.Background(), "doc-1", "blurry scan")

		require.NoError(t, err)
		assert.Equal(t, model.DocumentRejected, got.Status)
		assert.Equal(t, "blurry scan", got.RejectionReason)
		assert.Empty(t, got.AdminNotes)
		require.NotNil(t, got.RejectedAt)
		assert.True(t, got.RejectedAt.Equal(testNow))
		f.assertExpectations(t)
	})

	t.Run("approve from rejected", func(t *testing.T) {
		f := newFixture()
		doc := rejectedDoc()
		f.docs.On("FindByID", mock.Anything, "doc-1").Return(doc, nil)
		f.docs.On("Update", mock.Anything, doc).Return(nil)

		got, err := newReview(f).ApproveDocument(context.Background(), "admin-1", "doc-1", " clear copy ")

		require.NoError(t, err)
		assert.Equal(t, model.DocumentApproved, got.Status)
		require.NotNil(t, got.ApprovedBy)
		assert.Equal(t, "admin-1", *got.ApprovedBy)
		assert.Equal(t, "clear copy", got.AdminNotes)
		assert.Empty(t, got.RejectionReason)
	})

	t.Run("approve missing", func(t *testing.T) {
		f := newFixture()
		f.docs.On("FindByID", mock.Anything, "doc-9").Return(nil, sql.ErrNoRows)

		_, err := newReview(f).ApproveDocument(context.Background(), "admin-1", "doc-9", "")

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestReviewService_RecordCashPayment(t *testing.T) {
	t.Run("completed cash submits draft", func(t *testing.T) {
		f := newFixture()
		app := draftApp()
		f.apps.On("FindByID", mock.Anything, "app-1").Return(app, nil)
		f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
			return p.Method == model.MethodCash && p.ReceivedBy == "Jane Doe" &&
				p.Label() == "cash (Jane Doe)" && strings.HasPrefix(p.TransactionID, "CASH") &&
				p.PaidAt != nil
		})).Return(&model.Payment{
			ID: "pay-1", ApplicationID: "app-1", Amount: model.Rupees(5000),
			Method: model.MethodCash, ReceivedBy: "Jane Doe", Status: model.PaymentCompleted,
		}, nil)
		f.apps.On("UpdateStatus", mock.Anything, app, model.ApplicationDraft).Return(true, nil)
		f.users.On("FindByID", mock.Anything, "user-1").Return(testUser(), nil)

		res, err := newReview(f).RecordCashPayment(context.Background(), CashPaymentInput{
			ApplicationID:   "app-1",
			Amount:          5000,
			Status:          "completed",
			ReceivingPerson: "  Jane Doe ",
		})

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", res.Value.ReceivedBy)
		assert.Equal(t, model.ApplicationSubmitted, app.Status)
		require.Len(t, res.Notifications, 1)
		assert.Contains(t, res.Notifications[0].HTML, "₹5000.00")
		f.assertExpectations(t)
	})

	t.Run("receiver required", func(t *testing.T) {
		f := newFixture()

		_, err := newReview(f).RecordCashPayment(context.Background(), CashPaymentInput{
			ApplicationID: "app-1", Amount: 100, Status: "completed",
		})

		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Contains(t, apperr.MessageOf(err), "receivingPerson")
	})

	t.Run("amount beyond NUMERIC(10,2) is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := newReview(f).RecordCashPayment(context.Background(), CashPaymentInput{
			ApplicationID: "app-1", Amount: 100000000, Status: "completed", ReceivingPerson: "Jane Doe",
		})

		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Contains(t, apperr.MessageOf(err), "amount")
	})

	t.Run("unknown application", func(t *testing.T) {
		f := newFixture()
		f.apps.On("FindByID", mock.Anything, "app-x").Return(nil, sql.ErrNoRows)

		_, err := newReview(f).RecordCashPayment(context.Background(), CashPaymentInput{
			ApplicationID: "app-x", Amount: 100, Status: "pending", ReceivingPerson: "Jane",
		})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
		f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReviewService_Dashboard(t *testing.T) {
	f := newFixture()
	f.apps.On("CountByStatus", mock.Anything).Return(map[model.ApplicationStatus]int{
		model.ApplicationDraft:     7,
		model.ApplicationSubmitted: 3,
		model.ApplicationApproved:  2,
	}, nil)
	f.payments.On("Stats", mock.Anything).Return(&model.PaymentStats{TotalRevenue: model.Rupees(12500.5)}, nil)
	svc := newReview(f)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &DashboardStats{
		TotalApplications:    5,
		PendingReviews:       3,
		ApprovedApplications: 2,
		CompletedPayments:    model.Rupees(12500.5),
	}, stats)

	dist, err := svc.StatusDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []StatusCount{
		{Name: model.ApplicationSubmitted, Value: 3},
		{Name: model.ApplicationApproved, Value: 2},
	}, dist)
}

func TestReviewService_StatusDistributionEmpty(t *testing.T) {
	f := newFixture()
	f.apps.On("CountByStatus", mock.Anything).Return(map[model.ApplicationStatus]int{}, nil)

	dist, err := newReview(f).StatusDistribution(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, dist)
	assert.Empty(t, dist)
}

func TestReviewService_ListApplications(t *testing.T) {
	t.Run("draft filter rejected", func(t *testing.T) {
		f := newFixture()

		_, err := newReview(f).ListApplications(context.Background(), ApplicationQuery{Status: "draft"})

		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("paging and search", func(t *testing.T) {
		f := newFixture()
		f.apps.On("List", mock.Anything, repository.ApplicationFilter{
			Status: model.ApplicationSubmitted,
			Search: "asha",
			Page:   repository.PageQuery{Limit: 100, Offset: 200},
		}).Return(&repository.PageResult[model.ApplicationView]{
			Items: []model.ApplicationView{{FirstName: "Asha"}},
			Total: 201,
		}, nil)

		res, err := newReview(f).ListApplications(context.Background(), ApplicationQuery{
			Status: "submitted", Search: " asha ", Page: 3, Limit: 500,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, res.Page)
		assert.Equal(t, 100, res.Limit)
		assert.Equal(t, 201, res.Total)
		require.Len(t, res.Items, 1)
		f.assertExpectations(t)
	})
}

func TestReviewService_ListPaymentsDefaults(t *testing.T) {
	f := newFixture()
	f.payments.On("List", mock.Anything, repository.PaymentFilter{
		Page: repository.PageQuery{Limit: 10, Offset: 0},
	}).Return(&repository.PageResult[model.Payment]{Items: []model.Payment{}}, nil)

	res, err := newReview(f).ListPayments(context.Background(), PaymentQuery{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Limit)

	_, err = newReview(f).ListPayments(context.Background(), PaymentQuery{Status: "refunded"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReviewService_MonthlyData(t *testing.T) {
	f := newFixture()
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.apps.On("MonthlyCounts", mock.Anything, since).Return([]repository.MonthCount{
		{Month: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Submitted: 4, Approved: 1},
		{Month: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Submitted: 2},
	}, nil)

	got, err := newReview(f).MonthlyData(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []MonthlyCount{
		{Month: "Jan"},
		{Month: "Feb", Applications: 4, Approved: 1},
		{Month: "Mar"},
		{Month: "Apr"},
		{Month: "May"},
		{Month: "Jun", Applications: 2},
	}, got)
	f.assertExpectations(t)
}

func TestReviewService_RecentApplications(t *testing.T) {
	f := newFixture()
	view := model.ApplicationView{Application: *submittedApp(), FirstName: "Asha"}
	f.apps.On("List", mock.Anything, repository.ApplicationFilter{Page: repository.PageQuery{Limit: 10}}).
		Return(&repository.PageResult[model.ApplicationView]{Items: []model.ApplicationView{view}, Total: 31}, nil)

	got, err := newReview(f).RecentApplications(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Asha", got[0].FirstName)
	f.assertExpectations(t)
}
