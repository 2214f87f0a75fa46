package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions/internal/apperr"
)

func newTestDocument() *Document {
	return NewDocument("d1", "a1", "t1", FileRef{
		FileName: "APP1_t1_1.pdf",
		FilePath: "https://files.example.com/APP1_t1_1.pdf",
		FileSize: 1024,
		MimeType: "application/pdf",
	}, t0)
}

func TestDocumentRejectRequiresReason(t *testing.T) {
	d := newTestDocument()

	err := d.Reject("", t0)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, DocumentPending, d.Status)

	require.NoError(t, d.Reject("blurry scan", t0))
	assert.Equal(t, DocumentRejected, d.Status)
	assert.Equal(t, "blurry scan", d.RejectionReason)
	assert.NotNil(t, d.RejectedAt)
}

func TestDocumentRejectClearsNotes(t *testing.T) {
	d := newTestDocument()
	d.Approve("admin-1", "looks fine", t0)
	assert.Equal(t, "looks fine", d.AdminNotes)

	require.NoError(t, d.Reject("wrong file", t0))
	assert.Empty(t, d.AdminNotes)
}

func TestDocumentApproveFromRejected(t *testing.T) {
	d := newTestDocument()
	require.NoError(t, d.Reject("blurry scan", t0))

	d.Approve("admin-1", "", t0)
	assert.Equal(t, DocumentApproved, d.Status)
	require.NotNil(t, d.ApprovedBy)
	assert.Equal(t, "admin-1", *d.ApprovedBy)
	assert.Equal(t, t0, *d.ApprovedAt)
	assert.Empty(t, d.RejectionReason)
}

func TestDocumentReplaceResetsReview(t *testing.T) {
	d := newTestDocument()
	require.NoError(t, d.Reject("blurry scan", t0))

	next := FileRef{FileName: "APP1_t1_1_replaced_2.png", MimeType: "image/png", FileSize: 10}
	d.Replace(next, t0)

	assert.Equal(t, DocumentPending, d.Status)
	assert.Empty(t, d.RejectionReason)
	assert.Equal(t, next, d.File)
}

func TestDocumentReplaceClearsApproval(t *testing.T) {
	d := newTestDocument()
	d.Approve("admin-1", "looks fine", t0)

	d.Replace(FileRef{FileName: "APP1_t1_1_replaced_3.pdf", MimeType: "application/pdf"}, t0)

	assert.Equal(t, DocumentPending, d.Status)
	assert.Nil(t, d.ApprovedBy)
	assert.Nil(t, d.ApprovedAt)
	assert.Nil(t, d.RejectedAt)
	assert.Empty(t, d.AdminNotes)
}
