package billing

import "admissions/internal/model"

// InstallmentPlan describes the next installment due.
type InstallmentPlan struct {
	Active                bool        `json:"active"`
	TotalInstallments     int         `json:"totalInstallments"`
	PaidInstallments      int         `json:"paidInstallments"`
	NextInstallmentNumber int         `json:"nextInstallmentNumber"`
	InstallmentAmount     model.Money `json:"installmentAmount"`
	RemainingInstallments int         `json:"remainingInstallments"`
}

// DerivePlan builds the installment plan from the full payment history, oldest
// first. It returns nil when no completed installment payment exists.
//
// The plan is inactive once every installment is paid or once nothing remains
// to pay, even if fewer installments than planned were recorded.
func DerivePlan(payments []model.Payment, totalPayable model.Money) *InstallmentPlan {
	var (
		last *model.Payment
		paid int
	)
	for i := range payments {
		p := &payments[i]
		if p.Method != model.MethodInstallment || p.Status != model.PaymentCompleted {
			continue
		}
		paid++
		if last == nil || p.InstallmentNumber > last.InstallmentNumber {
			last = p
		}
	}
	if last == nil {
		return nil
	}

	remaining := totalPayable - CompletedTotal(payments)
	next := min(last.Amount, remaining)
	active := paid < last.TotalInstallments
	if remaining <= 0 {
		next = 0
		active = false
	}

	return &InstallmentPlan{
		Active:                active,
		TotalInstallments:     last.TotalInstallments,
		PaidInstallments:      paid,
		NextInstallmentNumber: paid + 1,
		InstallmentAmount:     next,
		RemainingInstallments: max(last.TotalInstallments-paid, 0),
	}
}

// PaymentPlan is the applicant-facing payment view.
type PaymentPlan struct {
	Summary
	InstallmentPlan *InstallmentPlan `json:"installmentPlan"`
}

// BuildPaymentPlan combines the summary and the installment plan.
func BuildPaymentPlan(totalPayable model.Money, payments []model.Payment) PaymentPlan {
	return PaymentPlan{
		Summary:         Summarize(totalPayable, payments),
		InstallmentPlan: DerivePlan(payments, totalPayable),
	}
}
