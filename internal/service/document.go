package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"admissions/internal/apperr"
	"admissions/internal/logging"
	"admissions/internal/model"
	"admissions/internal/notify"
	"admissions/internal/storage"
)

// allowedMimeTypes are the content types accepted for uploads.
var allowedMimeTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
}

// UploadInput is an uploaded file. DocumentTypeID is ignored on replace.
type UploadInput struct {
	DocumentTypeID string
	OriginalName   string
	ContentType    string
	Size           int64
	Body           io.Reader
}

func (s *applicantService) checkUpload(in UploadInput) error {
	if in.Body == nil {
		return apperr.Validation("file is required")
	}
	if _, ok := allowedMimeTypes[in.ContentType]; !ok {
		return apperr.Validation("invalid file type %q: only PDF, JPG and PNG are allowed", in.ContentType)
	}
	if in.Size <= 0 {
		return apperr.Validation("file is empty")
	}
	if s.maxUpload > 0 && in.Size > s.maxUpload {
		return apperr.Validation("file exceeds the %d byte limit", s.maxUpload)
	}
	return nil
}

// extensionFor keeps the original extension when present and falls back to the content type.
func extensionFor(originalName, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" {
		return ext
	}
	return allowedMimeTypes[contentType]
}

// putBlob uploads in under name and returns the file reference to persist.
// Blob store failures abort the operation as Upstream errors.
func (s *applicantService) putBlob(ctx context.Context, name string, in UploadInput) (model.FileRef, error) {
	info, err := s.Store.Put(ctx, name, in.Body, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata:    map[string]string{"original-filename": in.OriginalName},
	})
	if err != nil {
		return model.FileRef{}, apperr.Upstream(err, "upload to storage failed")
	}
	url, err := s.Store.URL(ctx, name)
	if err != nil {
		s.dropBlob(ctx, name)
		return model.FileRef{}, apperr.Upstream(err, "resolve file url failed")
	}
	size := info.Size
	if size <= 0 {
		size = in.Size
	}
	return model.FileRef{
		FileName:     name,
		OriginalName: in.OriginalName,
		FilePath:     url,
		FileSize:     size,
		MimeType:     in.ContentType,
	}, nil
}

// dropBlob is the rollback for a blob whose row could not be written.
func (s *applicantService) dropBlob(ctx context.Context, name string) {
	if err := s.Store.Delete(ctx, name); err != nil {
		logging.Error("service", "blob_rollback_failed", err, map[string]any{"key": name})
	}
}

func (s *applicantService) UploadDocument(ctx context.Context, userID string, in UploadInput) (Result[*model.Document], error) {
	if strings.TrimSpace(in.DocumentTypeID) == "" {
		return Result[*model.Document]{}, apperr.Validation("documentTypeId is required")
	}
	if err := s.checkUpload(in); err != nil {
		return Result[*model.Document]{}, err
	}
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return Result[*model.Document]{}, err
	}
	docType, err := s.Catalog.FindDocumentType(ctx, in.DocumentTypeID)
	if err != nil {
		return Result[*model.Document]{}, notFoundAs(err, "document type not found")
	}

	now := s.Now()
	name := fmt.Sprintf("%s_%s_%d%s", app.ApplicationNumber, docType.ID, now.UnixMilli(), extensionFor(in.OriginalName, in.ContentType))
	file, err := s.putBlob(ctx, name, in)
	if err != nil {
		return Result[*model.Document]{}, err
	}

	stored, err := s.Documents.Create(ctx, model.NewDocument(uuid.NewString(), app.ID, docType.ID, file, now))
	if err != nil {
		s.dropBlob(ctx, name)
		return Result[*model.Document]{}, fmt.Errorf("db save failed: %w", err)
	}
	stored.DocumentTypeName = docType.Name

	msgs := s.compose(ctx, app, func(r notify.Recipient) []notify.Message {
		return s.Composer.DocumentUploaded(r, docType.Name, in.OriginalName, now)
	})
	return Result[*model.Document]{Value: stored, Notifications: msgs}, nil
}

func (s *applicantService) ListDocuments(ctx context.Context, userID string) ([]model.Document, error) {
	app, err := s.ensureApplication(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Documents.ListByApplication(ctx, app.ID)
}

// ReplaceDocument always writes a new blob; the previous one is kept.
func (s *applicantService) ReplaceDocument(ctx context.Context, userID, documentID string, in UploadInput) (Result[*model.Document], error) {
	if err := s.checkUpload(in); err != nil {
		return Result[*model.Document]{}, err
	}
	doc, err := s.Documents.FindByID(ctx, documentID)
	if err != nil {
		return Result[*model.Document]{}, notFoundAs(err, "document not found")
	}
	app, err := s.application(ctx, doc.ApplicationID)
	if err != nil {
		return Result[*model.Document]{}, err
	}
	if app.UserID != userID {
		return Result[*model.Document]{}, apperr.Unauthorized("document does not belong to you")
	}

	now := s.Now()
	base := strings.TrimSuffix(doc.File.FileName, filepath.Ext(doc.File.FileName))
	name := fmt.Sprintf("%s_replaced_%d%s", base, now.UnixMilli(), extensionFor(in.OriginalName, in.ContentType))
	file, err := s.putBlob(ctx, name, in)
	if err != nil {
		return Result[*model.Document]{}, err
	}

	doc.Replace(file, now)
	if err := s.Documents.Update(ctx, doc); err != nil {
		s.dropBlob(ctx, name)
		return Result[*model.Document]{}, fmt.Errorf("db save failed: %w", notFoundAs(err, "document not found"))
	}

	typeName := doc.DocumentTypeName
	msgs := s.compose(ctx, app, func(r notify.Recipient) []notify.Message {
		return s.Composer.DocumentUploaded(r, typeName, in.OriginalName, now)
	})
	return Result[*model.Document]{Value: doc, Notifications: msgs}, nil
}
