package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions/internal/model"
)

func rs(v float64) model.Money { return model.Rupees(v) }

func installment(n, of int, amount float64, status model.PaymentStatus) model.Payment {
	return model.Payment{
		Amount:            rs(amount),
		Method:            model.MethodInstallment,
		Status:            status,
		InstallmentNumber: n,
		TotalInstallments: of,
	}
}

func TestFeeTotal(t *testing.T) {
	items := []model.FeeItem{
		{FeeType: "tuition", Amount: rs(2000), IsActive: true},
		{FeeType: "exam", Amount: rs(500), IsActive: true},
		{FeeType: "legacy", Amount: rs(9999), IsActive: false},
	}
	assert.Equal(t, rs(2500), FeeTotal(items))
	assert.Equal(t, model.Money(0), FeeTotal(nil))
}

func TestCompletedTotalIgnoresPendingAndFailed(t *testing.T) {
	payments := []model.Payment{
		{Amount: rs(1000), Status: model.PaymentCompleted},
		{Amount: rs(700), Status: model.PaymentPending},
		{Amount: rs(300), Status: model.PaymentFailed},
		{Amount: rs(250.25), Status: model.PaymentCompleted},
	}
	assert.Equal(t, rs(1250.25), CompletedTotal(payments))
}

func TestDerivePlanAllPaid(t *testing.T) {
	payments := []model.Payment{
		installment(1, 3, 3000, model.PaymentCompleted),
		installment(2, 3, 3000, model.PaymentCompleted),
		installment(3, 3, 3000, model.PaymentCompleted),
	}
	plan := DerivePlan(payments, rs(9000))
	require.NotNil(t, plan)
	assert.False(t, plan.Active)
	assert.Equal(t, 3, plan.PaidInstallments)
	assert.Equal(t, 0, plan.RemainingInstallments)
	assert.Equal(t, model.Money(0), plan.InstallmentAmount)
}

func TestDerivePlanFirstOfThree(t *testing.T) {
	payments := []model.Payment{installment(1, 3, 3000, model.PaymentCompleted)}
	plan := DerivePlan(payments, rs(9000))
	require.NotNil(t, plan)
	assert.True(t, plan.Active)
	assert.Equal(t, 3, plan.TotalInstallments)
	assert.Equal(t, 1, plan.PaidInstallments)
	assert.Equal(t, 2, plan.NextInstallmentNumber)
	assert.Equal(t, rs(3000), plan.InstallmentAmount)
	assert.Equal(t, 2, plan.RemainingInstallments)
}

func TestDerivePlanCapsAmountAtRemaining(t *testing.T) {
	payments := []model.Payment{
		installment(1, 3, 4000, model.PaymentCompleted),
		installment(2, 3, 4000, model.PaymentCompleted),
	}
	plan := DerivePlan(payments, rs(9000))
	require.NotNil(t, plan)
	assert.True(t, plan.Active)
	assert.Equal(t, rs(1000), plan.InstallmentAmount)
}

func TestDerivePlanInactiveWhenNothingRemains(t *testing.T) {
	payments := []model.Payment{
		installment(1, 3, 3000, model.PaymentCompleted),
		{Amount: rs(6000), Method: model.MethodCash, Status: model.PaymentCompleted},
	}
	plan := DerivePlan(payments, rs(9000))
	require.NotNil(t, plan)
	assert.False(t, plan.Active)
	assert.Equal(t, model.Money(0), plan.InstallmentAmount)
	assert.Equal(t, 2, plan.RemainingInstallments)
}

func TestDerivePlanSkipsUnsettledInstallments(t *testing.T) {
	payments := []model.Payment{
		installment(1, 3, 3000, model.PaymentCompleted),
		installment(2, 3, 3000, model.PaymentPending),
		installment(2, 3, 3000, model.PaymentFailed),
	}
	plan := DerivePlan(payments, rs(9000))
	require.NotNil(t, plan)
	assert.Equal(t, 1, plan.PaidInstallments)
	assert.Equal(t, 2, plan.NextInstallmentNumber)
}

func TestDerivePlanNone(t *testing.T) {
	assert.Nil(t, DerivePlan(nil, rs(9000)))
	assert.Nil(t, DerivePlan([]model.Payment{
		{Amount: rs(9000), Method: model.MethodOnline, Status: model.PaymentCompleted},
	}, rs(9000)))
	assert.Nil(t, DerivePlan([]model.Payment{installment(1, 2, 100, model.PaymentPending)}, rs(200)))
}

func TestBuildPaymentPlanJSON(t *testing.T) {
	payments := []model.Payment{installment(1, 2, 4500, model.PaymentCompleted)}
	plan := BuildPaymentPlan(rs(9000), payments)

	b, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"totalAmount": 9000,
		"paidAmount": 4500,
		"remainingAmount": 4500,
		"installmentPlan": {
			"active": true,
			"totalInstallments": 2,
			"paidInstallments": 1,
			"nextInstallmentNumber": 2,
			"installmentAmount": 4500,
			"remainingInstallments": 1
		}
	}`, string(b))
}
