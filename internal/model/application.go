package model

import (
	"strings"
	"time"

	"admissions/internal/apperr"
)

// ApplicationStatus is the lifecycle state of a student application.
type ApplicationStatus string

const (
	ApplicationDraft     ApplicationStatus = "draft"
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationDraft, ApplicationSubmitted, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// ApplicationEvent drives the application state machine.
type ApplicationEvent string

const (
	EventSubmit          ApplicationEvent = "submit"
	EventCompletePayment ApplicationEvent = "complete_payment"
	EventApprove         ApplicationEvent = "approve"
	EventReject          ApplicationEvent = "reject"
)

// NextApplicationStatus returns the status reached by applying ev in from.
//
// EventCompletePayment outside draft returns from unchanged with a nil error:
// payment completion after submission is an idempotent no-op. Every other
// illegal pair fails with an InvalidState error.
func NextApplicationStatus(from ApplicationStatus, ev ApplicationEvent) (ApplicationStatus, error) {
	switch ev {
	case EventSubmit:
		if from == ApplicationDraft {
			return ApplicationSubmitted, nil
		}
	case EventCompletePayment:
		if from == ApplicationDraft {
			return ApplicationSubmitted, nil
		}
		return from, nil
	case EventApprove:
		if from == ApplicationSubmitted {
			return ApplicationApproved, nil
		}
	case EventReject:
		if from == ApplicationSubmitted {
			return ApplicationRejected, nil
		}
	default:
		return from, apperr.Validation("unknown application event %q", ev)
	}
	return from, apperr.InvalidState("cannot %s an application in status %s", ev, from)
}

// Application is a student's admission record, one per user.
// Empty strings and nil pointers mean "not filled yet".
type Application struct {
	ID                string            `json:"id"`
	UserID            string            `json:"userId"`
	ApplicationNumber string            `json:"applicationNumber"`
	CountryID         *string           `json:"countryId"`
	StateID           *string           `json:"stateId"`
	CityID            *string           `json:"cityId"`
	CollegeID         *string           `json:"collegeId"`
	BranchID          *string           `json:"branchId"`
	TradeID           *string           `json:"tradeId"`
	DateOfBirth       *time.Time        `json:"dateOfBirth"`
	Gender            string            `json:"gender"`
	Category          string            `json:"category"`
	FatherName        string            `json:"fatherName"`
	MotherName        string            `json:"motherName"`
	GuardianName      string            `json:"guardianName"`
	Address           string            `json:"address"`
	Pincode           string            `json:"pincode"`
	Status            ApplicationStatus `json:"status"`
	SubmittedAt       *time.Time        `json:"submittedAt"`
	ApprovedAt        *time.Time        `json:"approvedAt"`
	RejectedAt        *time.Time        `json:"rejectedAt"`
	RejectionReason   string            `json:"rejectionReason"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// NewApplication returns a draft application for userID.
func NewApplication(id, userID, number string, now time.Time) *Application {
	return &Application{
		ID:                id,
		UserID:            userID,
		ApplicationNumber: number,
		Status:            ApplicationDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Submit moves a draft application to submitted.
func (a *Application) Submit(now time.Time) error {
	return a.apply(EventSubmit, now)
}

// CompletePayment is the payment-driven path to submission. It reports whether
// the status changed; outside draft it does nothing.
func (a *Application) CompletePayment(now time.Time) bool {
	before := a.Status
	if err := a.apply(EventCompletePayment, now); err != nil {
		return false
	}
	return a.Status != before
}

// Approve moves a submitted application to approved.
func (a *Application) Approve(now time.Time) error {
	return a.apply(EventApprove, now)
}

// Reject moves a submitted application to rejected. reason is required.
func (a *Application) Reject(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return apperr.Validation("rejection reason is required")
	}
	if err := a.apply(EventReject, now); err != nil {
		return err
	}
	a.RejectionReason = reason
	return nil
}

func (a *Application) apply(ev ApplicationEvent, now time.Time) error {
	next, err := NextApplicationStatus(a.Status, ev)
	if err != nil {
		return err
	}
	if next == a.Status {
		return nil
	}
	a.Status = next
	a.UpdatedAt = now
	switch next {
	case ApplicationSubmitted:
		a.SubmittedAt = stamp(a.SubmittedAt, now)
	case ApplicationApproved:
		a.ApprovedAt = stamp(a.ApprovedAt, now)
	case ApplicationRejected:
		a.RejectedAt = stamp(a.RejectedAt, now)
	}
	return nil
}

// stamp keeps an existing timestamp; transition times are written once.
func stamp(cur *time.Time, now time.Time) *time.Time {
	if cur != nil {
		return cur
	}
	t := now
	return &t
}

// ApplicationView is an application joined with its applicant and programme names
// for the review console.
type ApplicationView struct {
	Application
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	TradeName  string `json:"tradeName"`
	BranchName string `json:"branchName"`
}
