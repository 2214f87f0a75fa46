package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"admissions/internal/apperr"
	"admissions/internal/billing"
	"admissions/internal/model"
	"admissions/internal/notify"
	"admissions/internal/repository"
)

// ApplicationQuery filters the review listing.
type ApplicationQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// DocumentQuery filters the document review listing.
type DocumentQuery struct {
	Status        string
	ApplicationID string
	Page          int
	Limit         int
}

// PaymentQuery filters the payment listing.
type PaymentQuery struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ApplicationDetail is an application with everything attached to it.
type ApplicationDetail struct {
	Application *model.ApplicationView `json:"application"`
	Documents   []model.Document       `json:"documents"`
	Payments    []model.Payment        `json:"payments"`
	Payment     billing.Summary        `json:"payment"`
}

// CashPaymentInput is a payment collected in person by staff.
type CashPaymentInput struct {
	ApplicationID   string  `json:"applicationId" validate:"required"`
	Amount          float64 `json:"amount" validate:"gt=0,lte=99999999.99"`
	Status          string  `json:"status" validate:"required,oneof=pending completed failed"`
	ReceivingPerson string  `json:"receivingPerson" validate:"required,max=100"`
}

// DashboardStats summarises the review queue.
type DashboardStats struct {
	TotalApplications    int         `json:"totalApplications"`
	PendingReviews       int         `json:"pendingReviews"`
	ApprovedApplications int         `json:"approvedApplications"`
	RejectedApplications int         `json:"rejectedApplications"`
	CompletedPayments    model.Money `json:"completedPayments"`
}

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Name  model.ApplicationStatus `json:"name"`
	Value int                     `json:"value"`
}

// MonthlyCount is one bar of the submissions chart.
type MonthlyCount struct {
	Month        string `json:"month"`
	Applications int    `json:"applications"`
	Approved     int    `json:"approved"`
}

const (
	chartMonths        = 6
	recentApplications = 10
)

// ReviewService is the staff side of the admission workflow.
type ReviewService interface {
	ListApplications(ctx context.Context, q ApplicationQuery) (*ListResult[model.ApplicationView], error)
	Detail(ctx context.Context, applicationID string) (*ApplicationDetail, error)
	// Approve moves a submitted application to approved.
	Approve(ctx context.Context, applicationID string) (Result[*model.Application], error)
	// Reject moves a submitted application to rejected with a required reason.
	Reject(ctx context.Context, applicationID, reason string) (Result[*model.Application], error)
	ListDocuments(ctx context.Context, q DocumentQuery) (*ListResult[model.Document], error)
	ApproveDocument(ctx context.Context, reviewerID, documentID, notes string) (*model.Document, error)
	RejectDocument(ctx context.Context, documentID, reason string) (*model.Document, error)
	ListPayments(ctx context.Context, q PaymentQuery) (*ListResult[model.Payment], error)
	PaymentStats(ctx context.Context) (*model.PaymentStats, error)
	// RecordCashPayment records money received in person; the receiver is kept in the method label.
	RecordCashPayment(ctx context.Context, in CashPaymentInput) (Result[*model.Payment], error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	StatusDistribution(ctx context.Context) ([]StatusCount, error)
	// MonthlyData covers the current month and the five before it, oldest first.
	MonthlyData(ctx context.Context) ([]MonthlyCount, error)
	RecentApplications(ctx context.Context) ([]model.ApplicationView, error)
}

type reviewService struct {
	*core
}

func NewReviewService(d Deps) ReviewService {
	return &reviewService{core: newCore(d)}
}

func (s *reviewService) ListApplications(ctx context.Context, q ApplicationQuery) (*ListResult[model.ApplicationView], error) {
	status := model.ApplicationStatus(q.Status)
	if status != "" && (!status.Valid() || status == model.ApplicationDraft) {
		return nil, apperr.Validation("invalid status filter %q", q.Status)
	}
	page, n, limit := pageQuery(q.Page, q.Limit)
	res, err := s.Applications.List(ctx, repository.ApplicationFilter{
		Status: status,
		Search: strings.TrimSpace(q.Search),
		Page:   page,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.ApplicationView]{Items: res.Items, Total: res.Total, Page: n, Limit: limit}, nil
}

func (s *reviewService) Detail(ctx context.Context, applicationID string) (*ApplicationDetail, error) {
	app, err := s.application(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	v, err := s.view(ctx, app)
	if err != nil {
		return nil, err
	}
	docs, err := s.Documents.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	payments, err := s.ledger.ListPayments(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.fees.Total(ctx, app.TradeID)
	if err != nil {
		return nil, err
	}
	return &ApplicationDetail{
		Application: v,
		Documents:   docs,
		Payments:    payments,
		Payment:     billing.Summarize(total, payments),
	}, nil
}

func (s *reviewService) Approve(ctx context.Context, applicationID string) (Result[*model.Application], error) {
	app, err := s.application(ctx, applicationID)
	if err != nil {
		return Result[*model.Application]{}, err
	}
	from := app.Status
	now := s.Now()
	if err := app.Approve(now); err != nil {
		return Result[*model.Application]{}, err
	}
	if err := s.transition(ctx, app, from); err != nil {
		return Result[*model.Application]{}, err
	}
	msgs := s.compose(ctx, app, func(r notify.Recipient) []notify.Message {
		return s.Composer.Approved(r, now)
	})
	return Result[*model.Application]{Value: app, Notifications: msgs}, nil
}

func (s *reviewService) Reject(ctx context.Context, applicationID, reason string) (Result[*model.Application], error) {
	app, err := s.application(ctx, applicationID)
	if err != nil {
		return Result[*model.Application]{}, err
	}
	from := app.Status
	now := s.Now()
	if err := app.Reject(reason, now); err != nil {
		return Result[*model.Application]{}, err
	}
	if err := s.transition(ctx, app, from); err != nil {
		return Result[*model.Application]{}, err
	}
	msgs := s.compose(ctx, app, func(r notify.Recipient) []notify.Message {
		return s.Composer.Rejected(r, app.RejectionReason, now)
	})
	return Result[*model.Application]{Value: app, Notifications: msgs}, nil
}

func (s *reviewService) ListDocuments(ctx context.Context, q DocumentQuery) (*ListResult[model.Document], error) {
	status := model.DocumentStatus(q.Status)
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("invalid status filter %q", q.Status)
	}
	page, n, limit := pageQuery(q.Page, q.Limit)
	res, err := s.Documents.List(ctx, repository.DocumentFilter{
		Status:        status,
		ApplicationID: q.ApplicationID,
		Page:          page,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Document]{Items: res.Items, Total: res.Total, Page: n, Limit: limit}, nil
}

func (s *reviewService) ApproveDocument(ctx context.Context, reviewerID, documentID, notes string) (*model.Document, error) {
	doc, err := s.Documents.FindByID(ctx, documentID)
	if err != nil {
		return nil, notFoundAs(err, "document not found")
	}
	doc.Approve(reviewerID, notes, s.Now())
	if err := s.Documents.Update(ctx, doc); err != nil {
		return nil, notFoundAs(err, "document not found")
	}
	return doc, nil
}

func (s *reviewService) RejectDocument(ctx context.Context, documentID, reason string) (*model.Document, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("rejection reason is required")
	}
	doc, err := s.Documents.FindByID(ctx, documentID)
	if err != nil {
		return nil, notFoundAs(err, "document not found")
	}
	if err := doc.Reject(reason, s.Now()); err != nil {
		return nil, err
	}
	if err := s.Documents.Update(ctx, doc); err != nil {
		return nil, notFoundAs(err, "document not found")
	}
	return doc, nil
}

func (s *reviewService) ListPayments(ctx context.Context, q PaymentQuery) (*ListResult[model.Payment], error) {
	status := model.PaymentStatus(q.Status)
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("invalid status filter %q", q.Status)
	}
	page, n, limit := pageQuery(q.Page, q.Limit)
	res, err := s.Payments.List(ctx, repository.PaymentFilter{
		Status: status,
		Search: strings.TrimSpace(q.Search),
		Page:   page,
	})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Payment]{Items: res.Items, Total: res.Total, Page: n, Limit: limit}, nil
}

func (s *reviewService) PaymentStats(ctx context.Context) (*model.PaymentStats, error) {
	return s.Payments.Stats(ctx)
}

func (s *reviewService) RecordCashPayment(ctx context.Context, in CashPaymentInput) (Result[*model.Payment], error) {
	if err := validateInput(in); err != nil {
		return Result[*model.Payment]{}, err
	}
	p, err := s.ledger.RecordPayment(ctx, PaymentRecord{
		ApplicationID: in.ApplicationID,
		Amount:        model.Rupees(in.Amount),
		Method:        model.MethodCash,
		ReceivedBy:    strings.TrimSpace(in.ReceivingPerson),
		Status:        model.PaymentStatus(in.Status),
		TransactionID: fmt.Sprintf("CASH%d", s.Now().UnixMilli()),
	})
	if err != nil {
		return Result[*model.Payment]{}, err
	}
	if p.Status != model.PaymentCompleted {
		return Result[*model.Payment]{Value: p}, nil
	}
	app, err := s.application(ctx, in.ApplicationID)
	if err != nil {
		return Result[*model.Payment]{}, err
	}
	if _, err := s.completePayment(ctx, app); err != nil {
		return Result[*model.Payment]{}, err
	}
	msgs := s.compose(ctx, app, func(r notify.Recipient) []notify.Message {
		return s.Composer.PaymentReceived(r, formatAmount(p.Amount), s.Now())
	})
	return Result[*model.Payment]{Value: p, Notifications: msgs}, nil
}

func (s *reviewService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.Applications.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.Payments.Stats(ctx)
	if err != nil {
		return nil, err
	}
	submitted := counts[model.ApplicationSubmitted]
	approved := counts[model.ApplicationApproved]
	rejected := counts[model.ApplicationRejected]
	return &DashboardStats{
		TotalApplications:    submitted + approved + rejected,
		PendingReviews:       submitted,
		ApprovedApplications: approved,
		RejectedApplications: rejected,
		CompletedPayments:    stats.TotalRevenue,
	}, nil
}

// StatusDistribution lists non-draft statuses that have at least one application.
func (s *reviewService) StatusDistribution(ctx context.Context) ([]StatusCount, error) {
	counts, err := s.Applications.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := []StatusCount{}
	for _, st := range []model.ApplicationStatus{model.ApplicationSubmitted, model.ApplicationApproved, model.ApplicationRejected} {
		if n := counts[st]; n > 0 {
			out = append(out, StatusCount{Name: st, Value: n})
		}
	}
	return out, nil
}

// MonthlyData reports submissions and approvals per UTC month. Months without
// submissions are present with zero counts.
func (s *reviewService) MonthlyData(ctx context.Context) ([]MonthlyCount, error) {
	now := s.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(chartMonths - 1), 0)
	counts, err := s.Applications.MonthlyCounts(ctx, start)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[time.Time]repository.MonthCount, len(counts))
	for _, c := range counts {
		m := c.Month.UTC()
		byMonth[time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)] = c
	}
	out := make([]MonthlyCount, 0, chartMonths)
	for i := 0; i < chartMonths; i++ {
		m := start.AddDate(0, i, 0)
		c := byMonth[m]
		out = append(out, MonthlyCount{
			Month:        m.Format("Jan"),
			Applications: c.Submitted,
			Approved:     c.Approved,
		})
	}
	return out, nil
}

// RecentApplications returns the latest non-draft applications by submission time.
func (s *reviewService) RecentApplications(ctx context.Context) ([]model.ApplicationView, error) {
	res, err := s.Applications.List(ctx, repository.ApplicationFilter{
		Page: repository.PageQuery{Limit: recentApplications},
	})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
