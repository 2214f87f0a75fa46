package model

import (
	"strings"
	"time"

	"admissions/internal/apperr"
)

// DocumentStatus is the review state of a single uploaded document.
type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentPending, DocumentApproved, DocumentRejected:
		return true
	}
	return false
}

// FileRef describes a stored blob. It only changes through Document.Replace.
type FileRef struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	FilePath     string `json:"filePath"`
	FileSize     int64  `json:"fileSize"`
	MimeType     string `json:"mimeType"`
}

// Document belongs to exactly one application and one document type.
// Its review status is independent of the application status.
type Document struct {
	ID              string         `json:"id"`
	ApplicationID   string         `json:"applicationId"`
	DocumentTypeID  string         `json:"documentTypeId"`
	File            FileRef        `json:"file"`
	Status          DocumentStatus `json:"status"`
	UploadedAt      time.Time      `json:"uploadedAt"`
	ApprovedBy      *string        `json:"approvedBy"`
	ApprovedAt      *time.Time     `json:"approvedAt"`
	RejectedAt      *time.Time     `json:"rejectedAt"`
	RejectionReason string         `json:"rejectionReason"`
	AdminNotes      string         `json:"adminNotes"`

	// Read-side joins, filled by listing queries.
	DocumentTypeName  string `json:"documentTypeName,omitempty"`
	ApplicationNumber string `json:"applicationNumber,omitempty"`
	StudentName       string `json:"studentName,omitempty"`
}

// NewDocument returns a pending document for the given file.
func NewDocument(id, applicationID, documentTypeID string, file FileRef, now time.Time) *Document {
	return &Document{
		ID:             id,
		ApplicationID:  applicationID,
		DocumentTypeID: documentTypeID,
		File:           file,
		Status:         DocumentPending,
		UploadedAt:     now,
	}
}

// Approve marks the document approved from any state.
func (d *Document) Approve(reviewerID, notes string, now time.Time) {
	t := now
	reviewer := reviewerID
	d.Status = DocumentApproved
	d.ApprovedBy = &reviewer
	d.ApprovedAt = &t
	d.AdminNotes = strings.TrimSpace(notes)
	d.RejectionReason = ""
}

// Reject marks the document rejected from any state. reason is stored verbatim and required.
func (d *Document) Reject(reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return apperr.Validation("rejection reason is required")
	}
	t := now
	d.Status = DocumentRejected
	d.RejectedAt = &t
	d.RejectionReason = reason
	d.AdminNotes = ""
	return nil
}

// Replace swaps the file and resets review to pending, dropping the previous
// reviewer's verdict.
func (d *Document) Replace(file FileRef, now time.Time) {
	d.File = file
	d.Status = DocumentPending
	d.UploadedAt = now
	d.ApprovedBy = nil
	d.ApprovedAt = nil
	d.RejectedAt = nil
	d.RejectionReason = ""
	d.AdminNotes = ""
}

// DocumentType is a category of upload, e.g. a birth certificate.
type DocumentType struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsRequired   bool   `json:"isRequired"`
	MaxFileSize  int64  `json:"maxFileSize"`
	AllowedTypes string `json:"allowedTypes"`
	SortOrder    int    `json:"sortOrder"`
	IsActive     bool   `json:"isActive"`
}
