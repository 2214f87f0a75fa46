// Package billing derives amounts from fee schedules and payment history.
// Every function here is pure; callers load the rows.
package billing

import "admissions/internal/model"

// FeeTotal sums the active fee items. Currency is assumed uniform.
func FeeTotal(items []model.FeeItem) model.Money {
	var total model.Money
	for _, it := range items {
		if it.IsActive {
			total += it.Amount
		}
	}
	return total
}

// CompletedTotal sums the amount of completed payments.
func CompletedTotal(payments []model.Payment) model.Money {
	var total model.Money
	for _, p := range payments {
		if p.Status == model.PaymentCompleted {
			total += p.Amount
		}
	}
	return total
}

// Summary is the payable/paid/remaining view of one application.
type Summary struct {
	TotalAmount     model.Money `json:"totalAmount"`
	PaidAmount      model.Money `json:"paidAmount"`
	RemainingAmount model.Money `json:"remainingAmount"`
}

// Summarize combines the fee total with the completed payments.
func Summarize(totalPayable model.Money, payments []model.Payment) Summary {
	paid := CompletedTotal(payments)
	return Summary{
		TotalAmount:     totalPayable,
		PaidAmount:      paid,
		RemainingAmount: totalPayable - paid,
	}
}
