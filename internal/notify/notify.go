// Package notify delivers the emails produced by the admission workflow.
// Services return Messages; a Dispatcher hands them to a Notifier after the
// triggering write has committed, so a delivery failure never undoes it.
package notify

import (
	"context"

	"admissions/internal/logging"
)

// Kind names the event a message reports. It labels metrics and Kafka events.
type Kind string

const (
	KindVerificationCode     Kind = "verification_code"
	KindAdminRegistration    Kind = "admin_registration"
	KindApplicationSubmitted Kind = "application_submitted"
	KindAdminSubmitted       Kind = "admin_application_submitted"
	KindApplicationApproved  Kind = "application_approved"
	KindAdminApproved        Kind = "admin_application_approved"
	KindApplicationRejected  Kind = "application_rejected"
	KindAdminRejected        Kind = "admin_application_rejected"
	KindAdminDocument        Kind = "admin_document_uploaded"
	KindPaymentReceived      Kind = "payment_received"
)

// Message is one outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Kind    Kind   `json:"kind"`
}

// Notifier sends a single message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LogNotifier writes messages to the log instead of sending them.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, msg Message) error {
	logging.Info("notify", "email_logged", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
		"kind":    string(msg.Kind),
	})
	return nil
}
