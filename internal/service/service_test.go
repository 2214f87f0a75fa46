package service

import (
	"testing"
	"time"

	"admissions/internal/model"
	"admissions/internal/notify"
	repoMocks "admissions/internal/repository/mocks"
	storeMocks "admissions/internal/storage/mocks"
)

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	users    *repoMocks.MockUserRepository
	apps     *repoMocks.MockApplicationRepository
	docs     *repoMocks.MockDocumentRepository
	payments *repoMocks.MockPaymentRepository
	catalog  *repoMocks.MockCatalogRepository
	store    *storeMocks.MockStorage
}

func newFixture() *fixture {
	return &fixture{
		users:    new(repoMocks.MockUserRepository),
		apps:     new(repoMocks.MockApplicationRepository),
		docs:     new(repoMocks.MockDocumentRepository),
		payments: new(repoMocks.MockPaymentRepository),
		catalog:  new(repoMocks.MockCatalogRepository),
		store:    new(storeMocks.MockStorage),
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Users:        f.users,
		Applications: f.apps,
		Documents:    f.docs,
		Payments:     f.payments,
		Catalog:      f.catalog,
		Store:        f.store,
		Composer:     notify.NewComposer("Admissions Office", "admin@example.com", time.UTC),
		Now:          func() time.Time { return testNow },
	}
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.users.AssertExpectations(t)
	f.apps.AssertExpectations(t)
	f.docs.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.catalog.AssertExpectations(t)
	f.store.AssertExpectations(t)
}

func testUser() *model.User {
	return &model.User{
		ID:              "user-1",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		FirstName:       "Asha",
		LastName:        "Rao",
		IsEmailVerified: true,
		Role:            model.RoleStudent,
	}
}

func draftApp() *model.Application {
	return model.NewApplication("app-1", "user-1", "APP1", testNow.Add(-time.Hour))
}

func submittedApp() *model.Application {
	app := draftApp()
	submitted := testNow.Add(-30 * time.Minute)
	app.Status = model.ApplicationSubmitted
	app.SubmittedAt = &submitted
	return app
}

func strPtr(s string) *string { return &s }
