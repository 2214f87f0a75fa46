package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"admissions/internal/http/middleware"
	"admissions/internal/service"
)

// @Summary Applicant profile
// @Tags student
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.ApplicationView
// @Router /student/profile [get]
func GetProfile(svc service.ApplicantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := svc.Profile(c.UserContext(), middleware.UserID(c))
		return respond(c, v, err)
	}
}

// @Summary Update applicant profile
// @Tags student
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.ProfileInput true "Profile fields"
// @Success 200 {object} model.ApplicationView
// @Failure 409 {object} errorPayload
// @Router /student/profile [put]
func UpdateProfile(svc service.ApplicantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ProfileInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		v, err := svc.UpdateProfile(c.UserContext(), middleware.UserID(c), in)
		return respond(c, v, err)
	}
}

// @Summary Profile with payment totals
// @Tags student
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.ApplicantSummary
// @Router /student/summary [get]
func GetSummary(svc service.ApplicantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Summary(c.UserContext(), middleware.UserID(c))
		return respond(c, s, err)
	}
}

// uploadInput reads the multipart "file" field. The caller closes the returned file.
func uploadInput(c *fiber.Ctx) (service.UploadInput, multipart.File, *errorEnvelope) {
	fh, err := c.FormFile("file")
	if err != nil {
		return service.UploadInput{}, nil, &errorEnvelope{Code: "FILE_REQUIRED", Message: "file is required"}
	}
	f, err := fh.Open()
	if err != nil {
		return service.UploadInput{}, nil, &errorEnvelope{Code: "FILE_OPEN_ERROR", Message: "cannot open uploaded file"}
	}
	ct := fh.Header.Get(fiber.HeaderContentType)
	if ct == "" {
		ct = "application/octet-stream"
	}
	return service.UploadInput{
		DocumentTypeID: c.FormValue("documentTypeId"),
		OriginalName:   fh.Filename,
		ContentType:    ct,
		Size:           fh.Size,
		Body:           f,
	}, f, nil
}

// UploadDocument stores a document for the caller's application (multipart: file, documentTypeId).
//
// @Summary Upload a document
// @Tags student
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF, JPG or PNG"
// @Param documentTypeId formData string true "Document type"
// @Success 201 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /student/documents [post]
func UploadDocument(svc service.ApplicantService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, f, bad := uploadInput(c)
		if bad != nil {
			return writeError(c, fiber.StatusBadRequest, bad.Code, bad.Message)
		}
		defer f.Close()

		res, err := svc.UploadDocument(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.Status(fiber.StatusCreated).JSON(res.Value)
	}
}

// @Summary List my documents
// @Tags student
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Document
// @Router /student/documents [get]
func ListMyDocuments(svc service.ApplicantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.ListDocuments(c.UserContext(), middleware.UserID(c))
		return respond(c, docs, err)
	}
}

// ReplaceDocument swaps the file of a document the caller owns and resets its review.
//
// @Summary Replace a document
// @Tags student
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Document ID"
// @Param file formData file true "PDF, JPG or PNG"
// @Success 200 {object} model.Document
// @Failure 403 {object} errorPayload
// @Router /student/documents/{id}/replace [post]
func ReplaceDocument(svc service.ApplicantService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, f, bad := uploadInput(c)
		if bad != nil {
			return writeError(c, fiber.StatusBadRequest, bad.Code, bad.Message)
		}
		defer f.Close()

		res, err := svc.ReplaceDocument(c.UserContext(), middleware.UserID(c), c.Params("id"), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.JSON(res.Value)
	}
}

// @Summary Submit the application
// @Tags student
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.Application
// @Failure 409 {object} errorPayload
// @Router /student/submit [post]
func SubmitApplication(svc service.ApplicantService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Submit(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.JSON(res.Value)
	}
}

// @Summary Payment plan
// @Tags student
// @Security BearerAuth
// @Produce json
// @Success 200 {object} billing.PaymentPlan
// @Router /student/payment-plan [get]
func GetPaymentPlan(svc service.ApplicantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		plan, err := svc.PaymentPlan(c.UserContext(), middleware.UserID(c))
		return respond(c, plan, err)
	}
}

// @Summary List my payments
// @Tags student
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.Payment
// @Router /student/payments [get]
func ListMyPayments(svc service.ApplicantService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payments, err := svc.ListPayments(c.UserContext(), middleware.UserID(c))
		return respond(c, payments, err)
	}
}

// @Summary Record a payment
// @Tags student
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.PaymentInput true "Payment"
// @Success 201 {object} model.Payment
// @Router /student/payments [post]
func CreatePayment(svc service.ApplicantService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.PaymentInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		res, err := svc.CreatePayment(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.Status(fiber.StatusCreated).JSON(res.Value)
	}
}

// @Summary Confirm an online payment
// @Tags student
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.VerifyPaymentInput true "Gateway confirmation"
// @Success 200 {object} model.Payment
// @Router /student/payments/verify [post]
func VerifyPayment(svc service.ApplicantService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.VerifyPaymentInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		res, err := svc.VerifyPayment(c.UserContext(), middleware.UserID(c), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.JSON(res.Value)
	}
}
