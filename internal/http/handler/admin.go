package handler

import (
	"github.com/gofiber/fiber/v2"

	"admissions/internal/http/middleware"
	"admissions/internal/service"
)

type reasonRequest struct {
	Reason string `json:"reason"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// ListApplications lists non-draft applications (query: status, search, page, limit).
//
// @Summary List applications
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "submitted, approved or rejected"
// @Param search query string false "Application number or name"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, max 100"
// @Success 200 {object} service.ListResult[model.ApplicationView]
// @Router /admin/applications [get]
func ListApplications(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, ok := pagination(c)
		if !ok {
			return invalidQuery(c)
		}
		res, err := svc.ListApplications(c.UserContext(), service.ApplicationQuery{
			Status: c.Query("status"),
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		})
		return respond(c, res, err)
	}
}

// @Summary Application detail
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} service.ApplicationDetail
// @Router /admin/applications/{id} [get]
func GetApplication(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Detail(c.UserContext(), c.Params("id"))
		return respond(c, d, err)
	}
}

// @Summary Approve an application
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} model.Application
// @Failure 409 {object} errorPayload
// @Router /admin/applications/{id}/approve [post]
func ApproveApplication(svc service.ReviewService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Approve(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.JSON(res.Value)
	}
}

// @Summary Reject an application
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param body body reasonRequest true "Reason"
// @Success 200 {object} model.Application
// @Router /admin/applications/{id}/reject [post]
func RejectApplication(svc service.ReviewService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req reasonRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		res, err := svc.Reject(c.UserContext(), c.Params("id"), req.Reason)
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.JSON(res.Value)
	}
}

// @Summary List documents for review
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Param applicationId query string false "Application ID"
// @Success 200 {object} service.ListResult[model.Document]
// @Router /admin/documents [get]
func ListDocuments(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, ok := pagination(c)
		if !ok {
			return invalidQuery(c)
		}
		res, err := svc.ListDocuments(c.UserContext(), service.DocumentQuery{
			Status:        c.Query("status"),
			ApplicationID: c.Query("applicationId"),
			Page:          page,
			Limit:         limit,
		})
		return respond(c, res, err)
	}
}

// ApproveDocument records the reviewer and optional notes. The body may be empty.
//
// @Summary Approve a document
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param body body notesRequest false "Notes"
// @Success 200 {object} model.Document
// @Router /admin/documents/{id}/approve [post]
func ApproveDocument(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req notesRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return invalidBody(c)
			}
		}
		doc, err := svc.ApproveDocument(c.UserContext(), middleware.UserID(c), c.Params("id"), req.Notes)
		return respond(c, doc, err)
	}
}

// @Summary Reject a document
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Param body body reasonRequest true "Reason"
// @Success 200 {object} model.Document
// @Router /admin/documents/{id}/reject [post]
func RejectDocument(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req reasonRequest
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
		doc, err := svc.RejectDocument(c.UserContext(), c.Params("id"), req.Reason)
		return respond(c, doc, err)
	}
}

// @Summary List payments
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, completed or failed"
// @Param search query string false "Application number, student name or transaction id"
// @Success 200 {object} service.ListResult[model.Payment]
// @Router /admin/payments [get]
func ListPayments(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, ok := pagination(c)
		if !ok {
			return invalidQuery(c)
		}
		res, err := svc.ListPayments(c.UserContext(), service.PaymentQuery{
			Status: c.Query("status"),
			Search: c.Query("search"),
			Page:   page,
			Limit:  limit,
		})
		return respond(c, res, err)
	}
}

// @Summary Payment statistics
// @Tags admin
// @Security BearerAuth
// @Success 200 {object} model.PaymentStats
// @Router /admin/payments/stats [get]
func PaymentStats(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.PaymentStats(c.UserContext())
		return respond(c, stats, err)
	}
}

// @Summary Record a cash payment
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Param body body service.CashPaymentInput true "Cash payment"
// @Success 201 {object} model.Payment
// @Router /admin/payments [post]
func RecordCashPayment(svc service.ReviewService, n Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CashPaymentInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		res, err := svc.RecordCashPayment(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		dispatch(c, n, res.Notifications)
		return c.Status(fiber.StatusCreated).JSON(res.Value)
	}
}

// @Summary Dashboard counters
// @Tags admin
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Router /admin/dashboard/stats [get]
func DashboardStats(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.DashboardStats(c.UserContext())
		return respond(c, stats, err)
	}
}

// @Summary Application status distribution
// @Tags admin
// @Security BearerAuth
// @Success 200 {array} service.StatusCount
// @Router /admin/dashboard/status-distribution [get]
func StatusDistribution(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dist, err := svc.StatusDistribution(c.UserContext())
		return respond(c, dist, err)
	}
}

// @Summary Submissions and approvals for the last six months
// @Tags admin
// @Security BearerAuth
// @Success 200 {array} service.MonthlyCount
// @Router /admin/dashboard/monthly-data [get]
func MonthlyData(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := svc.MonthlyData(c.UserContext())
		return respond(c, data, err)
	}
}

// @Summary Latest submitted applications
// @Tags admin
// @Security BearerAuth
// @Success 200 {array} model.ApplicationView
// @Router /admin/dashboard/recent-applications [get]
func RecentApplications(svc service.ReviewService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apps, err := svc.RecentApplications(c.UserContext())
		return respond(c, apps, err)
	}
}
