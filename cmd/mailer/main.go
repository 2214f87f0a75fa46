// Command mailer consumes email events from Kafka and delivers them over SMTP.
// It pairs with the api's kafka notifier driver.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"admissions/internal/config"
	"admissions/internal/logging"
	"admissions/internal/notify"
)

func main() {
	if err := run(); err != nil {
		logging.Error("mailer", "stopped", err, nil)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.SetLocation(cfg.Location())
	if cfg.Mail.SMTPHost == "" {
		return errors.New("SMTP_HOST is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := notify.NewConsumer(cfg.Kafka, notify.NewSMTPNotifier(cfg.Mail))
	defer consumer.Close()

	logging.Info("mailer", "consumer_started", map[string]any{
		"broker": cfg.Kafka.Broker,
		"topic":  cfg.Kafka.Topic,
		"group":  cfg.Kafka.GroupID,
	})
	if err := consumer.Run(ctx); err != nil {
		return err
	}
	logging.Info("mailer", "consumer_stopped", nil)
	return nil
}
