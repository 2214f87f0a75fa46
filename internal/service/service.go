// Package service implements the admission use cases on top of the repositories,
// the blob store and the billing rules. Mutations return the emails they trigger
// alongside their result; callers dispatch them after the write has committed.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"admissions/internal/apperr"
	"admissions/internal/logging"
	"admissions/internal/metrics"
	"admissions/internal/model"
	"admissions/internal/notify"
	"admissions/internal/repository"
	"admissions/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Result carries a mutation's value and the notifications it produced.
type Result[T any] struct {
	Value         T
	Notifications []notify.Message
}

// ListResult is the service-level DTO for paginated listings.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Deps wires the collaborators shared by every service.
type Deps struct {
	Users        repository.UserRepository
	Applications repository.ApplicationRepository
	Documents    repository.DocumentRepository
	Payments     repository.PaymentRepository
	Catalog      repository.CatalogRepository
	Store        storage.Storage
	Composer     *notify.Composer
	Metrics      *metrics.Domain
	// Now defaults to the current UTC time.
	Now func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	return d
}

// core holds lookups shared by the applicant and review services.
type core struct {
	Deps
	fees   *FeeCalculator
	ledger *PaymentLedger
}

func newCore(d Deps) *core {
	d = d.withDefaults()
	return &core{
		Deps:   d,
		fees:   NewFeeCalculator(d.Catalog),
		ledger: NewPaymentLedger(d.Applications, d.Payments, d.Metrics, d.Now),
	}
}

func (c *core) application(ctx context.Context, id string) (*model.Application, error) {
	app, err := c.Applications.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "application not found")
	}
	return app, nil
}

func (c *core) user(ctx context.Context, id string) (*model.User, error) {
	u, err := c.Users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user not found")
	}
	return u, nil
}

// view joins an application with its applicant and programme names.
func (c *core) view(ctx context.Context, app *model.Application) (*model.ApplicationView, error) {
	u, err := c.user(ctx, app.UserID)
	if err != nil {
		return nil, err
	}
	v := &model.ApplicationView{
		Application: *app,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
	}
	if app.TradeID == nil || *app.TradeID == "" {
		return v, nil
	}
	trade, err := c.Catalog.FindTrade(ctx, *app.TradeID)
	if errors.Is(err, sql.ErrNoRows) {
		return v, nil
	}
	if err != nil {
		return nil, err
	}
	v.TradeName = trade.Name
	branches, err := c.Catalog.Branches(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range branches {
		if b.ID == trade.BranchID {
			v.BranchName = b.Name
			break
		}
	}
	return v, nil
}

func (c *core) recipient(ctx context.Context, app *model.Application) (notify.Recipient, error) {
	u, err := c.user(ctx, app.UserID)
	if err != nil {
		return notify.Recipient{}, err
	}
	return recipientOf(u, app), nil
}

// compose builds notifications for app's applicant. A failed lookup is logged and
// yields no messages; the mutation has already committed.
func (c *core) compose(ctx context.Context, app *model.Application, build func(notify.Recipient) []notify.Message) []notify.Message {
	r, err := c.recipient(ctx, app)
	if err != nil {
		logging.Error("service", "recipient_lookup_failed", err, map[string]any{"application_id": app.ID})
		return nil
	}
	return build(r)
}

func recipientOf(u *model.User, app *model.Application) notify.Recipient {
	r := notify.Recipient{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
	if app != nil {
		r.ApplicationNumber = app.ApplicationNumber
	}
	return r
}

// transition persists a status change guarded on the previous status.
func (c *core) transition(ctx context.Context, app *model.Application, from model.ApplicationStatus) error {
	ok, err := c.Applications.UpdateStatus(ctx, app, from)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.InvalidState("application %s is no longer %s", app.ApplicationNumber, from)
	}
	c.Metrics.Transition(string(app.Status))
	return nil
}

// completePayment runs the payment path to submission. A lost race means another
// request already moved the application out of draft, which is the same no-op.
func (c *core) completePayment(ctx context.Context, app *model.Application) (bool, error) {
	from := app.Status
	if !app.CompletePayment(c.Now()) {
		return false, nil
	}
	ok, err := c.Applications.UpdateStatus(ctx, app, from)
	if err != nil {
		return false, err
	}
	if ok {
		c.Metrics.Transition(string(app.Status))
	}
	return ok, nil
}

func notFoundAs(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(format, args...)
	}
	return err
}

func pageQuery(page, limit int) (repository.PageQuery, int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if page <= 0 {
		page = 1
	}
	return repository.PageQuery{Limit: limit, Offset: (page - 1) * limit}, page, limit
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput maps validator failures to a Validation error naming each field.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperr.Validation("invalid input")
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperr.Validation("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
