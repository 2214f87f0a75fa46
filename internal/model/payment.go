package model

import (
	"strings"
	"time"

	"admissions/internal/apperr"
)

// PaymentStatus is the settlement state of one payment attempt.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// PaymentMethod is how the money was collected.
type PaymentMethod string

const (
	MethodOnline      PaymentMethod = "online"
	MethodCash        PaymentMethod = "cash"
	MethodInstallment PaymentMethod = "installment"
)

// Valid reports whether m is a known method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodOnline, MethodCash, MethodInstallment:
		return true
	}
	return false
}

// DefaultCurrency is the only currency fee items and payments are recorded in.
const DefaultCurrency = "INR"

// MethodLabel is the stored form of a payment method. Cash payments carry the
// receiving staff member in the label itself, e.g. "cash (Jane Doe)".
func MethodLabel(m PaymentMethod, receivedBy string) string {
	receivedBy = strings.TrimSpace(receivedBy)
	if receivedBy == "" {
		return string(m)
	}
	return string(m) + " (" + receivedBy + ")"
}

// ParseMethodLabel splits a stored label back into method and receiver.
// Labels without a parenthesised suffix have an empty receiver.
func ParseMethodLabel(label string) (PaymentMethod, string) {
	label = strings.TrimSpace(label)
	open := strings.Index(label, " (")
	if open < 0 || !strings.HasSuffix(label, ")") {
		return PaymentMethod(label), ""
	}
	return PaymentMethod(label[:open]), label[open+2 : len(label)-1]
}

// Payment is one payment attempt against an application.
type Payment struct {
	ID                string        `json:"id"`
	ApplicationID     string        `json:"applicationId"`
	Amount            Money         `json:"amount"`
	Currency          string        `json:"currency"`
	Method            PaymentMethod `json:"paymentMethod"`
	ReceivedBy        string        `json:"receivedBy,omitempty"`
	Status            PaymentStatus `json:"status"`
	TransactionID     string        `json:"transactionId"`
	InstallmentNumber int           `json:"installmentNumber"`
	TotalInstallments int           `json:"totalInstallments"`
	PaidAt            *time.Time    `json:"paidAt"`
	CreatedAt         time.Time     `json:"createdAt"`

	// Read-side joins, filled by listing queries.
	ApplicationNumber string `json:"applicationNumber,omitempty"`
	StudentName       string `json:"studentName,omitempty"`
	StudentEmail      string `json:"studentEmail,omitempty"`
}

// Label is the stored payment method string.
func (p *Payment) Label() string {
	return MethodLabel(p.Method, p.ReceivedBy)
}

// Complete settles a pending payment. txnID replaces the transaction id when non-empty.
func (p *Payment) Complete(txnID string, now time.Time) error {
	if p.Status != PaymentPending {
		return apperr.InvalidState("cannot complete a payment in status %s", p.Status)
	}
	t := now
	p.Status = PaymentCompleted
	p.PaidAt = &t
	if txnID != "" {
		p.TransactionID = txnID
	}
	return nil
}

// Fail marks a pending payment failed.
func (p *Payment) Fail() error {
	if p.Status != PaymentPending {
		return apperr.InvalidState("cannot fail a payment in status %s", p.Status)
	}
	p.Status = PaymentFailed
	return nil
}

// PaymentStats aggregates the ledger for the review console.
type PaymentStats struct {
	TotalRevenue      Money `json:"totalRevenue"`
	PendingPayments   int   `json:"pendingPayments"`
	CompletedPayments int   `json:"completedPayments"`
	FailedPayments    int   `json:"failedPayments"`
}
