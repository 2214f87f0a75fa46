package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"admissions/internal/apperr"
	"admissions/internal/model"
)

func TestPaymentLedger_RecordPayment(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		rec     PaymentRecord
		setup   func(f *fixture)
		wantErr error
		check   func(t *testing.T, p *model.Payment)
	}{
		{
			name: "completed payment is stamped",
			rec:  PaymentRecord{ApplicationID: "app-1", Amount: model.Rupees(3000), Method: model.MethodOnline, Status: model.PaymentCompleted},
			setup: func(f *fixture) {
				f.apps.On("FindByID", mock.Anything, "app-1").Return(draftApp(), nil)
				f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
					return p.PaidAt != nil && p.PaidAt.Equal(testNow) &&
						p.InstallmentNumber == 1 && p.TotalInstallments == 1 &&
						p.Currency == model.DefaultCurrency && p.ID != ""
				})).Return(&model.Payment{ID: "pay-1", Method: model.MethodOnline, Status: model.PaymentCompleted}, nil)
			},
			check: func(t *testing.T, p *model.Payment) {
				assert.Equal(t, "pay-1", p.ID)
			},
		},
		{
			name: "pending payment has no paid_at",
			rec:  PaymentRecord{ApplicationID: "app-1", Amount: model.Rupees(3000), Method: model.MethodInstallment, Status: model.PaymentPending, InstallmentNumber: 2, TotalInstallments: 3},
			setup: func(f *fixture) {
				f.apps.On("FindByID", mock.Anything, "app-1").Return(draftApp(), nil)
				f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
					return p.PaidAt == nil && p.InstallmentNumber == 2 && p.TotalInstallments == 3
				})).Return(&model.Payment{ID: "pay-2", Method: model.MethodInstallment, Status: model.PaymentPending}, nil)
			},
		},
		{
			name: "missing application",
			rec:  PaymentRecord{ApplicationID: "nope", Amount: model.Rupees(10), Method: model.MethodCash, Status: model.PaymentCompleted},
			setup: func(f *fixture) {
				f.apps.On("FindByID", mock.Anything, "nope").Return(nil, sql.ErrNoRows)
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name:    "installment out of range",
			rec:     PaymentRecord{ApplicationID: "app-1", Amount: model.Rupees(10), Method: model.MethodInstallment, Status: model.PaymentPending, InstallmentNumber: 4, TotalInstallments: 3},
			setup:   func(f *fixture) {},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "non-positive amount",
			rec:     PaymentRecord{ApplicationID: "app-1", Amount: 0, Method: model.MethodOnline, Status: model.PaymentPending},
			setup:   func(f *fixture) {},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)
			l := NewPaymentLedger(f.apps, f.payments, nil, func() time.Time { return testNow })

			p, err := l.RecordPayment(ctx, tt.rec)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				if tt.check != nil {
					tt.check(t, p)
				}
			}
			f.assertExpectations(t)
		})
	}
}

func TestPaymentLedger_CompletedTotal(t *testing.T) {
	f := newFixture()
	l := NewPaymentLedger(f.apps, f.payments, nil, nil)

	f.payments.On("ListByApplication", mock.Anything, "app-1").Return([]model.Payment{
		{Amount: model.Rupees(3000), Status: model.PaymentCompleted},
		{Amount: model.Rupees(3000), Status: model.PaymentPending},
		{Amount: model.Rupees(3000), Status: model.PaymentFailed},
		{Amount: model.Rupees(1500.5), Status: model.PaymentCompleted},
	}, nil)

	total, err := l.CompletedTotal(context.Background(), "app-1")

	require.NoError(t, err)
	assert.Equal(t, model.Rupees(4500.5), total)
}

func TestPaymentLedger_CompleteLostRace(t *testing.T) {
	f := newFixture()
	l := NewPaymentLedger(f.apps, f.payments, nil, func() time.Time { return testNow })
	p := &model.Payment{ID: "pay-1", Status: model.PaymentPending}

	f.payments.On("UpdateStatus", mock.Anything, p, model.PaymentPending).Return(false, nil)

	err := l.Complete(context.Background(), p, "gw-1")
	assert.ErrorIs(t, err, apperr.ErrInvalidState)
}

func TestPaymentLedger_CompleteSettledPayment(t *testing.T) {
	f := newFixture()
	l := NewPaymentLedger(f.apps, f.payments, nil, nil)

	err := l.Complete(context.Background(), &model.Payment{ID: "pay-1", Status: model.PaymentFailed}, "gw-1")

	assert.ErrorIs(t, err, apperr.ErrInvalidState)
	f.payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestFeeCalculator_Total(t *testing.T) {
	f := newFixture()
	fc := NewFeeCalculator(f.catalog)

	f.catalog.On("FeeItems", mock.Anything, "trade-1").Return([]model.FeeItem{
		{Amount: model.Rupees(2000), IsActive: true},
		{Amount: model.Rupees(500), IsActive: true},
		{Amount: model.Rupees(9999), IsActive: false},
	}, nil)

	total, err := fc.Total(context.Background(), strPtr("trade-1"))
	require.NoError(t, err)
	assert.Equal(t, model.Rupees(2500), total)

	total, err = fc.Total(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, model.Money(0), total)
	f.catalog.AssertNumberOfCalls(t, "FeeItems", 1)
}
