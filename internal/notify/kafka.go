package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"

	"admissions/internal/config"
	"admissions/internal/logging"
)

const fetchBackoff = time.Second

// EmailEvent is the Kafka payload published by the kafka driver and consumed by the mailer.
type EmailEvent struct {
	Message
	CreatedAt time.Time `json:"created_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes each message as an EmailEvent keyed by recipient.
type KafkaNotifier struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaNotifier(cfg config.KafkaConfig) *KafkaNotifier {
	transport := &kafka.Transport{}
	if cfg.Username != "" {
		transport.SASL = plain.Mechanism{Username: cfg.Username, Password: cfg.Password}
	}
	if cfg.TLS {
		transport.TLS = &tls.Config{}
	}
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Broker),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Transport:    transport,
			WriteTimeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

func (k *KafkaNotifier) Send(ctx context.Context, msg Message) error {
	now := k.now()
	value, err := sonic.Marshal(EmailEvent{Message: msg, CreatedAt: now})
	if err != nil {
		return fmt.Errorf("encode email event: %w", err)
	}
	return k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: value,
		Time:  now,
	})
}

func (k *KafkaNotifier) Close() error {
	return k.writer.Close()
}

// Consumer reads EmailEvents and hands them to a Notifier. Events are committed
// after one delivery attempt whatever the outcome; retries are not attempted.
type Consumer struct {
	reader   messageReader
	notifier Notifier
}

func NewConsumer(cfg config.KafkaConfig, n Notifier) *Consumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if cfg.Username != "" {
		dialer.SASLMechanism = plain.Mechanism{Username: cfg.Username, Password: cfg.Password}
	}
	if cfg.TLS {
		dialer.TLS = &tls.Config{}
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Broker},
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})
	return &Consumer{reader: reader, notifier: n}
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			logging.Error("mailer", "fetch_failed", err, nil)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(fetchBackoff):
			}
			continue
		}
		c.handle(ctx, m)
		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			logging.Error("mailer", "commit_failed", err, map[string]any{"offset": m.Offset})
		}
	}
}

func (c *Consumer) handle(ctx context.Context, m kafka.Message) {
	var ev EmailEvent
	if err := sonic.Unmarshal(m.Value, &ev); err != nil {
		logging.Error("mailer", "decode_failed", err, map[string]any{"offset": m.Offset})
		return
	}
	if err := c.notifier.Send(ctx, ev.Message); err != nil {
		logging.Error("mailer", "send_failed", err, map[string]any{
			"to":   ev.To,
			"kind": string(ev.Kind),
		})
		return
	}
	logging.Info("mailer", "sent", map[string]any{"to": ev.To, "kind": string(ev.Kind)})
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
