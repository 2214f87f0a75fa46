package handler

import (
	"github.com/gofiber/fiber/v2"

	"admissions/internal/http/middleware"
	"admissions/internal/model"
	"admissions/internal/service"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	DB         Pinger
	Tokens     middleware.TokenParser
	Files      FileOpener
	Notifier   Notifier
	Accounts   service.AccountService
	Applicants service.ApplicantService
	Reviews    service.ReviewService
	Catalog    service.CatalogService
}

// RegisterRoutes attaches the health probes and the /api routes to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	authed := middleware.RequireAuth(d.Tokens)

	a := api.Group("/auth")
	a.Post("/register", Register(d.Accounts, d.Notifier))
	a.Post("/verify-email", VerifyEmail(d.Accounts))
	a.Post("/login", Login(d.Accounts))
	a.Get("/me", authed, Me(d.Accounts))

	s := api.Group("/student", authed)
	s.Get("/profile", GetProfile(d.Applicants))
	s.Put("/profile", UpdateProfile(d.Applicants))
	s.Get("/summary", GetSummary(d.Applicants))
	s.Post("/documents", UploadDocument(d.Applicants, d.Notifier))
	s.Get("/documents", ListMyDocuments(d.Applicants))
	s.Post("/documents/:id/replace", ReplaceDocument(d.Applicants, d.Notifier))
	s.Post("/submit", SubmitApplication(d.Applicants, d.Notifier))
	s.Get("/payment-plan", GetPaymentPlan(d.Applicants))
	s.Get("/payments", ListMyPayments(d.Applicants))
	s.Post("/payments", CreatePayment(d.Applicants, d.Notifier))
	s.Post("/payments/verify", VerifyPayment(d.Applicants, d.Notifier))

	adm := api.Group("/admin", authed, middleware.RequireRole(model.RoleAdmin))
	adm.Get("/applications", ListApplications(d.Reviews))
	adm.Get("/applications/:id", GetApplication(d.Reviews))
	adm.Post("/applications/:id/approve", ApproveApplication(d.Reviews, d.Notifier))
	adm.Post("/applications/:id/reject", RejectApplication(d.Reviews, d.Notifier))
	adm.Get("/documents", ListDocuments(d.Reviews))
	adm.Post("/documents/:id/approve", ApproveDocument(d.Reviews))
	adm.Post("/documents/:id/reject", RejectDocument(d.Reviews))
	adm.Get("/payments", ListPayments(d.Reviews))
	adm.Get("/payments/stats", PaymentStats(d.Reviews))
	adm.Post("/payments", RecordCashPayment(d.Reviews, d.Notifier))
	adm.Get("/dashboard/stats", DashboardStats(d.Reviews))
	adm.Get("/dashboard/status-distribution", StatusDistribution(d.Reviews))
	adm.Get("/dashboard/monthly-data", MonthlyData(d.Reviews))
	adm.Get("/dashboard/recent-applications", RecentApplications(d.Reviews))

	adm.Get("/countries", listAll(d.Catalog.CountryRecords))
	adm.Post("/countries", createWith(d.Catalog.CreateCountry))
	adm.Put("/countries/:id", updateWith(d.Catalog.UpdateCountry))
	adm.Delete("/countries/:id", deleteWith(d.Catalog.DeleteCountry, "country deleted"))
	adm.Get("/states", listAll(d.Catalog.StateRecords))
	adm.Post("/states", createWith(d.Catalog.CreateState))
	adm.Put("/states/:id", updateWith(d.Catalog.UpdateState))
	adm.Delete("/states/:id", deleteWith(d.Catalog.DeleteState, "state deleted"))
	adm.Get("/cities", listAll(d.Catalog.CityRecords))
	adm.Post("/cities", createWith(d.Catalog.CreateCity))
	adm.Put("/cities/:id", updateWith(d.Catalog.UpdateCity))
	adm.Delete("/cities/:id", deleteWith(d.Catalog.DeleteCity, "city deleted"))

	m := api.Group("/master")
	m.Get("/countries", listAll(d.Catalog.Countries))
	m.Get("/states", listBy("countryId", d.Catalog.States))
	m.Get("/cities", listBy("stateId", d.Catalog.Cities))
	m.Get("/colleges", listAll(d.Catalog.Colleges))
	m.Get("/branches", listAll(d.Catalog.Branches))
	m.Get("/trades", listBy("branchId", d.Catalog.Trades))
	m.Get("/document-types", listAll(d.Catalog.DocumentTypes))
	m.Get("/fee-structure", listBy("tradeId", d.Catalog.FeeStructure))

	if d.Files != nil {
		api.Get("/files/:name", ServeFile(d.Files))
	}
}
