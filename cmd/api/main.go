package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"admissions/docs"
	"admissions/internal/auth"
	"admissions/internal/config"
	"admissions/internal/database"
	"admissions/internal/database/migration"
	handlers "admissions/internal/http/handler"
	"admissions/internal/http/middleware"
	"admissions/internal/logging"
	"admissions/internal/metrics"
	"admissions/internal/notify"
	"admissions/internal/otel"
	"admissions/internal/repository/postgres"
	"admissions/internal/service"
	"admissions/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// @title Admissions API
// @version 1.0
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		logging.Error("api", "startup_failed", err, nil)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.SetLocation(cfg.Location())

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		return err
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	// shutdown owns the close once the server is up.
	closeDB := true
	defer func() {
		if closeDB {
			db.Close()
		}
	}()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		return err
	}

	store, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return err
	}
	files, err := storage.NewFileCache(cfg.Files.CacheDir, store)
	if err != nil {
		return err
	}

	domainMetrics, err := metrics.NewDomain(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	notifier, closeNotifier := newNotifier(cfg)
	defer closeNotifier.Close()
	dispatcher := notify.NewDispatcher(notifier, domainMetrics)

	tokens, err := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		return err
	}

	deps := service.Deps{
		Users:        postgres.NewUserPostgres(db),
		Applications: postgres.NewApplicationPostgres(db),
		Documents:    postgres.NewDocumentPostgres(db),
		Payments:     postgres.NewPaymentPostgres(db),
		Catalog:      postgres.NewCatalogPostgres(db),
		Store:        store,
		Composer:     notify.NewComposer("http://"+cfg.AppHost, cfg.Mail.AdminEmail, cfg.Location()),
		Metrics:      domainMetrics,
	}

	app := fiber.New(fiber.Config{
		AppName:      "admissions",
		ErrorHandler: handlers.ErrorHandler(),
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    int(cfg.Files.MaxUploadBytes) + 1<<20,
	})

	app.Use(otelfiber.Middleware())
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(httpMetrics.Handler())
	app.Use(cors.New())
	app.Use(compress.New())
	app.Use("/api/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))

	app.Get("/metrics", adaptor.HTTPHandler(otelhttp.NewHandler(promhttp.Handler(), "metrics")))

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:         db,
		Tokens:     tokens,
		Files:      files,
		Notifier:   dispatcher,
		Accounts:   service.NewAccountService(deps, tokens),
		Applicants: service.NewApplicantService(deps, cfg.Files.MaxUploadBytes, cfg.Gateway.Secret),
		Reviews:    service.NewReviewService(deps),
		Catalog:    service.NewCatalogService(deps.Catalog),
	})

	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		logging.Info("api", "server_started", map[string]any{"port": cfg.Port})
		errCh <- app.Listen(":" + cfg.Port)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	logging.Info("api", "shutdown_started", nil)
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	closeDB = false
	return shutdown(shutdownCtx, app, dispatcher, shutdownTracing, db)
}

// shutdown stops accepting requests, then drains pending emails before closing
// the tracer and the database.
func shutdown(ctx context.Context, app *fiber.App, d *notify.Dispatcher, tracing func(context.Context) error, db *sql.DB) error {
	var errs []error
	if err := app.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := d.Wait(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := tracing(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := db.Close(); err != nil {
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err == nil {
		logging.Info("api", "shutdown_complete", nil)
	}
	return err
}

// newNotifier picks the delivery driver. The closer releases driver resources.
func newNotifier(cfg *config.AppConfig) (notify.Notifier, io.Closer) {
	switch cfg.Mail.Driver {
	case config.DriverSMTP:
		return notify.NewSMTPNotifier(cfg.Mail), noClose
	case config.DriverKafka:
		k := notify.NewKafkaNotifier(cfg.Kafka)
		return k, k
	default:
		return notify.LogNotifier{}, noClose
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

var noClose = closerFunc(func() error { return nil })
