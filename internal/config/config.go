package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string        `env:"HOST"`
	Port               string        `env:"PORT" envDefault:"5432"`
	User               string        `env:"USER"`
	Password           string        `env:"PASSWORD"`
	Name               string        `env:"NAME"`
	SSLMode            string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns       int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int           `env:"CONN_MAX_LIFETIME_SEC" envDefault:"300"`
	ConnectAttempts    int           `env:"CONNECT_ATTEMPTS" envDefault:"5"`
	ConnectBackoff     time.Duration `env:"CONNECT_BACKOFF" envDefault:"2s"`
}

// MinIOConfig holds object storage settings for MinIO.
// PublicBaseURL, when set, is the prefix of the URL stored on uploaded documents.
type MinIOConfig struct {
	Endpoint      string `env:"ENDPOINT"`
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	Bucket        string `env:"BUCKET"`
	UseSSL        bool   `env:"USE_SSL" envDefault:"false"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

// AuthConfig holds access token settings.
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

// Notifier drivers.
const (
	DriverLog   = "log"
	DriverSMTP  = "smtp"
	DriverKafka = "kafka"
)

// MailConfig holds outbound email settings.
type MailConfig struct {
	Driver       string `env:"NOTIFIER_DRIVER" envDefault:"log"`
	AdminEmail   string `env:"ADMIN_EMAIL"`
	From         string `env:"MAIL_FROM" envDefault:"noreply@admissions.local"`
	FromName     string `env:"MAIL_FROM_NAME" envDefault:"Admissions Office"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

// KafkaConfig holds the email event topic settings used by the kafka driver and the mailer.
type KafkaConfig struct {
	Broker   string `env:"BROKER" envDefault:"localhost:9092"`
	Topic    string `env:"TOPIC" envDefault:"admission-emails"`
	GroupID  string `env:"GROUP_ID" envDefault:"admission-mailer"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	TLS      bool   `env:"TLS" envDefault:"false"`
}

// GatewayConfig holds the online payment gateway secret used to verify signatures.
type GatewayConfig struct {
	Secret string `env:"PAYMENT_GATEWAY_SECRET"`
}

// FilesConfig holds upload limits and the local blob cache directory.
type FilesConfig struct {
	CacheDir       string `env:"FILE_CACHE_DIR" envDefault:"./cache/files"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string         `env:"APP_HOST" envDefault:"localhost:8080"`
	Port     string         `env:"PORT" envDefault:"8080"`
	Timezone string         `env:"TZ_LOCATION" envDefault:"UTC"`
	Database DatabaseConfig `envPrefix:"DB_"`
	MinIO    MinIOConfig    `envPrefix:"MINIO_"`
	Auth     AuthConfig
	Mail     MailConfig
	Kafka    KafkaConfig `envPrefix:"KAFKA_"`
	Gateway  GatewayConfig
	Files    FilesConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the .env file.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field settings that env tags cannot express.
func (c *AppConfig) Validate() error {
	switch c.Mail.Driver {
	case DriverLog, DriverSMTP, DriverKafka:
	default:
		return fmt.Errorf("invalid NOTIFIER_DRIVER %q: want log, smtp or kafka", c.Mail.Driver)
	}
	if c.Mail.Driver == DriverSMTP && c.Mail.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required for the smtp notifier")
	}
	if c.Files.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

// Location resolves Timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
