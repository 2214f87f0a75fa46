package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions/internal/apperr"
)

func TestMethodLabel(t *testing.T) {
	assert.Equal(t, "cash (Jane Doe)", MethodLabel(MethodCash, "Jane Doe"))
	assert.Equal(t, "online", MethodLabel(MethodOnline, ""))

	m, who := ParseMethodLabel("cash (Jane Doe)")
	assert.Equal(t, MethodCash, m)
	assert.Equal(t, "Jane Doe", who)

	m, who = ParseMethodLabel("installment")
	assert.Equal(t, MethodInstallment, m)
	assert.Empty(t, who)

	m, who = ParseMethodLabel("cash (R. (Senior) Clerk)")
	assert.Equal(t, MethodCash, m)
	assert.Equal(t, "R. (Senior) Clerk", who)
}

func TestPaymentStatusMachine(t *testing.T) {
	p := &Payment{Status: PaymentPending, TransactionID: "TXN1"}
	require.NoError(t, p.Complete("pay_123", t0))
	assert.Equal(t, PaymentCompleted, p.Status)
	assert.Equal(t, "pay_123", p.TransactionID)
	assert.Equal(t, t0, *p.PaidAt)

	err := p.Complete("pay_456", t0)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	assert.True(t, errors.Is(p.Fail(), apperr.ErrInvalidState))

	q := &Payment{Status: PaymentPending}
	require.NoError(t, q.Fail())
	assert.Equal(t, PaymentFailed, q.Status)
	assert.Nil(t, q.PaidAt)
	assert.True(t, errors.Is(q.Complete("", t0), apperr.ErrInvalidState))
}

func TestMoney(t *testing.T) {
	m, err := ParseMoney("2500.5")
	require.NoError(t, err)
	assert.Equal(t, Money(250050), m)
	assert.Equal(t, "2500.50", m.String())

	b, err := json.Marshal(Money(300000))
	require.NoError(t, err)
	assert.Equal(t, "3000", string(b))

	b, err = json.Marshal(Money(250050))
	require.NoError(t, err)
	assert.Equal(t, "2500.5", string(b))

	var in struct {
		Amount Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 3000.75}`), &in))
	assert.Equal(t, Money(300075), in.Amount)

	var scanned Money
	require.NoError(t, scanned.Scan([]byte("9999.00")))
	assert.Equal(t, Money(999900), scanned)

	_, err = ParseMoney("abc")
	assert.Error(t, err)

	m, err = ParseMoney("2500.550")
	require.NoError(t, err)
	assert.Equal(t, Money(250055), m)

	m, err = ParseMoney("-12.3")
	require.NoError(t, err)
	assert.Equal(t, Money(-1230), m)
	assert.Equal(t, "-12.30", m.String())

	for _, bad := range []string{"1.-5", "1.+5", "2500.559", "", "99999999999999999999"} {
		_, err := ParseMoney(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, Money(101), Rupees(1.005))
	assert.Equal(t, Money(0), Rupees(0))
}
