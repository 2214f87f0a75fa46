package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"admissions/internal/apperr"
	"admissions/internal/billing"
	"admissions/internal/metrics"
	"admissions/internal/model"
	"admissions/internal/repository"
)

// PaymentRecord is a payment to append to an application's ledger.
type PaymentRecord struct {
	ApplicationID     string
	Amount            model.Money
	Method            model.PaymentMethod
	ReceivedBy        string
	Status            model.PaymentStatus
	TransactionID     string
	InstallmentNumber int
	TotalInstallments int
}

// PaymentLedger records payments and aggregates what has been paid.
type PaymentLedger struct {
	applications repository.ApplicationRepository
	payments     repository.PaymentRepository
	metrics      *metrics.Domain
	now          func() time.Time
}

func NewPaymentLedger(apps repository.ApplicationRepository, payments repository.PaymentRepository, m *metrics.Domain, now func() time.Time) *PaymentLedger {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &PaymentLedger{applications: apps, payments: payments, metrics: m, now: now}
}

// RecordPayment appends a payment. paidAt is set only for completed payments.
// Installment numbers default to 1 of 1.
func (l *PaymentLedger) RecordPayment(ctx context.Context, rec PaymentRecord) (*model.Payment, error) {
	if rec.Amount <= 0 {
		return nil, apperr.Validation("amount must be positive")
	}
	if !rec.Method.Valid() {
		return nil, apperr.Validation("unknown payment method %q", rec.Method)
	}
	if !rec.Status.Valid() {
		return nil, apperr.Validation("unknown payment status %q", rec.Status)
	}
	if rec.InstallmentNumber == 0 {
		rec.InstallmentNumber = 1
	}
	if rec.TotalInstallments == 0 {
		rec.TotalInstallments = 1
	}
	if rec.InstallmentNumber < 1 || rec.InstallmentNumber > rec.TotalInstallments {
		return nil, apperr.Validation("installment %d of %d is out of range", rec.InstallmentNumber, rec.TotalInstallments)
	}
	if _, err := l.applications.FindByID(ctx, rec.ApplicationID); err != nil {
		return nil, notFoundAs(err, "application not found")
	}

	now := l.now()
	p := &model.Payment{
		ID:                uuid.NewString(),
		ApplicationID:     rec.ApplicationID,
		Amount:            rec.Amount,
		Currency:          model.DefaultCurrency,
		Method:            rec.Method,
		ReceivedBy:        rec.ReceivedBy,
		Status:            rec.Status,
		TransactionID:     rec.TransactionID,
		InstallmentNumber: rec.InstallmentNumber,
		TotalInstallments: rec.TotalInstallments,
		CreatedAt:         now,
	}
	if p.Status == model.PaymentCompleted {
		paid := now
		p.PaidAt = &paid
	}
	stored, err := l.payments.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	l.metrics.PaymentRecorded(string(stored.Method), string(stored.Status))
	return stored, nil
}

// ListPayments returns the full history of an application, oldest first.
func (l *PaymentLedger) ListPayments(ctx context.Context, applicationID string) ([]model.Payment, error) {
	return l.payments.ListByApplication(ctx, applicationID)
}

// CompletedTotal sums the completed payments of an application.
func (l *PaymentLedger) CompletedTotal(ctx context.Context, applicationID string) (model.Money, error) {
	payments, err := l.ListPayments(ctx, applicationID)
	if err != nil {
		return 0, err
	}
	return billing.CompletedTotal(payments), nil
}

// Complete settles a pending payment. A concurrent settlement surfaces as InvalidState.
func (l *PaymentLedger) Complete(ctx context.Context, p *model.Payment, txnID string) error {
	if err := p.Complete(txnID, l.now()); err != nil {
		return err
	}
	return l.settle(ctx, p)
}

// Fail marks a pending payment failed.
func (l *PaymentLedger) Fail(ctx context.Context, p *model.Payment) error {
	if err := p.Fail(); err != nil {
		return err
	}
	return l.settle(ctx, p)
}

func (l *PaymentLedger) settle(ctx context.Context, p *model.Payment) error {
	ok, err := l.payments.UpdateStatus(ctx, p, model.PaymentPending)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidState("payment %s is no longer pending", p.ID)
	}
	return nil
}
