package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"admissions/internal/apperr"
	"admissions/internal/billing"
	"admissions/internal/gateway"
	"admissions/internal/model"
	"admissions/internal/notify"
)

// ProfileInput carries the editable profile fields. Nil fields are left unchanged.
type ProfileInput struct {
	FirstName    *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Phone        *string `json:"phone" validate:"omitempty,min=10,max=15,numeric"`
	CountryID    *string `json:"countryId" validate:"omitempty,uuid"`
	StateID      *string `json:"stateId" validate:"omitempty,uuid"`
	CityID       *string `json:"cityId" validate:"omitempty,uuid"`
	CollegeID    *string `json:"collegeId" validate:"omitempty,uuid"`
	BranchID     *string `json:"branchId" validate:"omitempty,uuid"`
	TradeID      *string `json:"tradeId" validate:"omitempty,uuid"`
	DateOfBirth  *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender       *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Category     *string `json:"category" validate:"omitempty,max=20"`
	FatherName   *string `json:"fatherName" validate:"omitempty,max=100"`
	MotherName   *string `json:"motherName" validate:"omitempty,max=100"`
	GuardianName *string `json:"guardianName" validate:"omitempty,max=100"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
	Pincode      *string `json:"pincode" validate:"omitempty,len=6,numeric"`
}

// ApplicantSummary is the profile with the payment totals.
type ApplicantSummary struct {
	Profile *model.ApplicationView `json:"profile"`
	Payment billing.Summary        `json:"payment"`
}

// PaymentInput is a payment recorded by the applicant.
type PaymentInput struct {
	Amount            float64 `json:"amount" validate:"gt=0,lte=99999999.99"`
	Method            string  `json:"paymentMethod" validate:"required,oneof=online installment"`
	Status            string  `json:"status" validate:"required,oneof=pending completed failed"`
	InstallmentNumber int     `json:"installmentNumber" validate:"omitempty,min=1"`
	TotalInstallments int     `json:"totalInstallments" validate:"omitempty,min=1"`
}

// VerifyPaymentInput is the gateway confirmation of an online payment.
type VerifyPaymentInput struct {
	PaymentID        string `json:"paymentId" validate:"required"`
	OrderID          string `json:"orderId" validate:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}

// ApplicantService is the applicant side of the admission workflow.
type ApplicantService interface {
	// Profile returns the caller's application, creating a draft on first access.
	Profile(ctx context.Context, userID string) (*model.ApplicationView, error)
	// UpdateProfile edits a draft application and the caller's contact details.
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.ApplicationView, error)
	// Summary returns the profile with payable, paid and remaining amounts.
	Summary(ctx context.Context, userID string) (*ApplicantSummary, error)
	// UploadDocument stores a new document for the caller's application.
	UploadDocument(ctx context.Context, userID string, in UploadInput) (Result[*model.Document], error)
	// ListDocuments returns the caller's documents, newest first.
	ListDocuments(ctx context.Context, userID string) ([]model.Document, error)
	// ReplaceDocument swaps the file of a document the caller owns and resets its review.
	ReplaceDocument(ctx context.Context, userID, documentID string, in UploadInput) (Result[*model.Document], error)
	// Submit moves the caller's draft application to submitted.
	Submit(ctx context.Context, userID string) (Result[*model.Application], error)
	// PaymentPlan returns totals and the derived installment plan.
	PaymentPlan(ctx context.Context, userID string) (*billing.PaymentPlan, error)
	// CreatePayment records a payment; a completed payment submits a draft application.
	CreatePayment(ctx context.Context, userID string, in PaymentInput) (Result[*model.Payment], error)
	// VerifyPayment checks a gateway signature and completes the pending payment.
	VerifyPayment(ctx context.Context, userID string, in VerifyPaymentInput) (Result[*model.Payment], error)
	// ListPayments returns the caller's payment history, oldest first.
	ListPayments(ctx context.Context, userID string) ([]model.Payment, error)
}

type applicantService struct {
	*core
	maxUpload     int64
	gatewaySecret string
}

// NewApplicantService constructs an ApplicantService. maxUpload bounds document size in bytes.
func NewApplicantService(d Deps, maxUpload int64, gatewaySecret string) ApplicantService {
	return &applicantService{core: newCore(d), maxUpload: maxUpload, gatewaySecret: gatewaySecret}
}

// ensureApplication returns the user's application, creating a draft on first touch.
func (s *applicantService) ensureApplication(ctx context.Context, userID string) (*model.Application, error) {
	app, err := s.Applications.FindByUserID(ctx, userID)
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}

	now := s.Now()
	created, err := s.Applications.Create(ctx, model.NewApplication(uuid.NewString(), userID, applicationNumber(now), now))
	if err == nil {
		return created, nil
	}
	// A concurrent first touch may have created it.
	if app, findErr := s.Applications.FindByUserID(ctx, userID); findErr == nil {
		return app, nil
	}
	return nil, fmt.Errorf("create application: %w", err)
}

func applicationNumber(now time.Time) string {
	return fmt.Sprintf("APP%d%d", now.UnixMilli(), rand.IntN(1000))
}

func (s *applicantService) Profile(ctx context.Context, userID string) (*model.ApplicationView, error) {
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, app)
}

func (s *applicantService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*model.ApplicationView, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return nil, err
	}
	if app.Status != model.ApplicationDraft {
		return nil, apperr.InvalidState("profile cannot be changed once the application is %s", app.Status)
	}
	if in.TradeID != nil {
		if _, err := s.Catalog.FindTrade(ctx, *in.TradeID); err != nil {
			return nil, notFoundAs(err, "trade not found")
		}
	}

	if err := applyProfile(app, in); err != nil {
		return nil, err
	}
	app.UpdatedAt = s.Now()
	ok, err := s.Applications.UpdateProfile(ctx, app)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidState("application %s is no longer a draft", app.ApplicationNumber)
	}

	if in.FirstName != nil || in.LastName != nil || in.Phone != nil {
		u, err := s.user(ctx, userID)
		if err != nil {
			return nil, err
		}
		setString(&u.FirstName, in.FirstName)
		setString(&u.LastName, in.LastName)
		setString(&u.Phone, in.Phone)
		u.UpdatedAt = app.UpdatedAt
		if err := s.Users.UpdateContact(ctx, u); err != nil {
			return nil, err
		}
	}
	return s.view(ctx, app)
}

func applyProfile(app *model.Application, in ProfileInput) error {
	setID(&app.CountryID, in.CountryID)
	setID(&app.StateID, in.StateID)
	setID(&app.CityID, in.CityID)
	setID(&app.CollegeID, in.CollegeID)
	setID(&app.BranchID, in.BranchID)
	setID(&app.TradeID, in.TradeID)
	if in.DateOfBirth != nil {
		dob, err := time.Parse(time.DateOnly, *in.DateOfBirth)
		if err != nil {
			return apperr.Validation("dateOfBirth must be YYYY-MM-DD")
		}
		app.DateOfBirth = &dob
	}
	setString(&app.Gender, in.Gender)
	setString(&app.Category, in.Category)
	setString(&app.FatherName, in.FatherName)
	setString(&app.MotherName, in.MotherName)
	setString(&app.GuardianName, in.GuardianName)
	setString(&app.Address, in.Address)
	setString(&app.Pincode, in.Pincode)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setID(dst **string, v *string) {
	if v == nil {
		return
	}
	id := strings.TrimSpace(*v)
	if id == "" {
		*dst = nil
		return
	}
	*dst = &id
}

func (s *applicantService) Summary(ctx context.Context, userID string) (*ApplicantSummary, error) {
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return nil, err
	}
	v, err := s.view(ctx, app)
	if err != nil {
		return nil, err
	}
	total, err := s.fees.Total(ctx, app.TradeID)
	if err != nil {
		return nil, err
	}
	payments, err := s.ledger.ListPayments(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	return &ApplicantSummary{Profile: v, Payment: billing.Summarize(total, payments)}, nil
}

func (s *applicantService) Submit(ctx context.Context, userID string) (Result[*model.Application], error) {
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return Result[*model.Application]{}, err
	}
	from := app.Status
	now := s.Now()
	if err := app.Submit(now); err != nil {
		return Result[*model.Application]{}, err
	}
	if err := s.transition(ctx, app, from); err != nil {
		return Result[*model.Application]{}, err
	}
	msgs := s.compose(ctx, app, func(r notify.Recipient) []notify.Message {
		return s.Composer.Submitted(r, now)
	})
	return Result[*model.Application]{Value: app, Notifications: msgs}, nil
}

func (s *applicantService) PaymentPlan(ctx context.Context, userID string) (*billing.PaymentPlan, error) {
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.fees.Total(ctx, app.TradeID)
	if err != nil {
		return nil, err
	}
	payments, err := s.ledger.ListPayments(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	plan := billing.BuildPaymentPlan(total, payments)
	return &plan, nil
}

func (s *applicantService) CreatePayment(ctx context.Context, userID string, in PaymentInput) (Result[*model.Payment], error) {
	if err := validateInput(in); err != nil {
		return Result[*model.Payment]{}, err
	}
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return Result[*model.Payment]{}, err
	}
	p, err := s.ledger.RecordPayment(ctx, PaymentRecord{
		ApplicationID:     app.ID,
		Amount:            model.Rupees(in.Amount),
		Method:            model.PaymentMethod(in.Method),
		Status:            model.PaymentStatus(in.Status),
		TransactionID:     fmt.Sprintf("TXN%d", s.Now().UnixMilli()),
		InstallmentNumber: in.InstallmentNumber,
		TotalInstallments: in.TotalInstallments,
	})
	if err != nil {
		return Result[*model.Payment]{}, err
	}
	if p.Status != model.PaymentCompleted {
		return Result[*model.Payment]{Value: p}, nil
	}
	msgs, err := s.afterPayment(ctx, app, p)
	if err != nil {
		return Result[*model.Payment]{}, err
	}
	return Result[*model.Payment]{Value: p, Notifications: msgs}, nil
}

func (s *applicantService) VerifyPayment(ctx context.Context, userID string, in VerifyPaymentInput) (Result[*model.Payment], error) {
	if err := validateInput(in); err != nil {
		return Result[*model.Payment]{}, err
	}
	if !gateway.Verify(s.gatewaySecret, in.OrderID, in.GatewayPaymentID, in.Signature) {
		return Result[*model.Payment]{}, apperr.Validation("invalid payment signature")
	}
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return Result[*model.Payment]{}, err
	}
	p, err := s.Payments.FindByID(ctx, in.PaymentID)
	if err != nil {
		return Result[*model.Payment]{}, notFoundAs(err, "payment not found")
	}
	if p.ApplicationID != app.ID {
		return Result[*model.Payment]{}, apperr.Unauthorized("payment does not belong to this application")
	}
	if err := s.ledger.Complete(ctx, p, in.GatewayPaymentID); err != nil {
		return Result[*model.Payment]{}, err
	}
	msgs, err := s.afterPayment(ctx, app, p)
	if err != nil {
		return Result[*model.Payment]{}, err
	}
	return Result[*model.Payment]{Value: p, Notifications: msgs}, nil
}

// afterPayment submits a draft application once a payment completes and
// returns the payment receipt.
func (s *applicantService) afterPayment(ctx context.Context, app *model.Application, p *model.Payment) ([]notify.Message, error) {
	if _, err := s.completePayment(ctx, app); err != nil {
		return nil, err
	}
	return s.compose(ctx, app, func(r notify.Recipient) []notify.Message {
		return s.Composer.PaymentReceived(r, formatAmount(p.Amount), s.Now())
	}), nil
}

func (s *applicantService) ListPayments(ctx context.Context, userID string) ([]model.Payment, error) {
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ledger.ListPayments(ctx, app.ID)
}

func formatAmount(m model.Money) string {
	return "₹" + m.String()
}
