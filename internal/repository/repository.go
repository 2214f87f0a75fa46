// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
package repository

import (
	"errors"
	"time"

	"admissions/internal/model"
)

var (
	// ErrDuplicate reports a write that hit a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey reports a write that points at a missing row, or a delete
	// of a row that is still referenced.
	ErrForeignKey = errors.New("foreign key violation")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

// ApplicationFilter narrows the review listing. Drafts are never listed.
type ApplicationFilter struct {
	Status model.ApplicationStatus
	Search string
	Page   PageQuery
}

// DocumentFilter narrows the document review listing.
type DocumentFilter struct {
	Status        model.DocumentStatus
	ApplicationID string
	Page          PageQuery
}

// PaymentFilter narrows the payment listing. Search matches application
// number, student name or transaction id.
type PaymentFilter struct {
	Status model.PaymentStatus
	Search string
	Page   PageQuery
}

// MonthCount is the number of applications submitted in a calendar month and
// how many of them are approved.
type MonthCount struct {
	Month     time.Time
	Submitted int
	Approved  int
}
