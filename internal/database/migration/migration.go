package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"admissions/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is created last, so its presence means every step has run.
const sentinelTable = "public.schema_ready"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email             TEXT        NOT NULL UNIQUE,
  phone             TEXT        NOT NULL UNIQUE,
  first_name        TEXT        NOT NULL,
  last_name         TEXT        NOT NULL,
  password_hash     TEXT        NOT NULL,
  is_email_verified BOOLEAN     NOT NULL DEFAULT false,
  role              TEXT        NOT NULL DEFAULT 'student' CHECK (role IN ('student', 'admin')),
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_verification_codes",
		SQL: `CREATE TABLE IF NOT EXISTS verification_codes (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email      TEXT        NOT NULL,
  code       TEXT        NOT NULL,
  type       TEXT        NOT NULL,
  expires_at TIMESTAMPTZ NOT NULL,
  is_used    BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_countries",
		SQL: `CREATE TABLE IF NOT EXISTS countries (
  id         UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT    NOT NULL,
  code       TEXT    NOT NULL UNIQUE,
  is_active  BOOLEAN NOT NULL DEFAULT true
);`,
	},
	{
		Name: "create_table_states",
		SQL: `CREATE TABLE IF NOT EXISTS states (
  id         UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  country_id UUID    NOT NULL REFERENCES countries (id),
  name       TEXT    NOT NULL,
  code       TEXT    NOT NULL UNIQUE,
  is_active  BOOLEAN NOT NULL DEFAULT true
);`,
	},
	{
		Name: "create_table_cities",
		SQL: `CREATE TABLE IF NOT EXISTS cities (
  id        UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  state_id  UUID    NOT NULL REFERENCES states (id),
  name      TEXT    NOT NULL,
  is_active BOOLEAN NOT NULL DEFAULT true
);`,
	},
	{
		Name: "create_table_colleges",
		SQL: `CREATE TABLE IF NOT EXISTS colleges (
  id        UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  name      TEXT    NOT NULL,
  code      TEXT    NOT NULL,
  address   TEXT    NOT NULL DEFAULT '',
  city_id   UUID    REFERENCES cities (id),
  is_active BOOLEAN NOT NULL DEFAULT true
);`,
	},
	{
		Name: "create_table_branches",
		SQL: `CREATE TABLE IF NOT EXISTS branches (
  id          UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  name        TEXT    NOT NULL,
  code        TEXT    NOT NULL UNIQUE,
  description TEXT    NOT NULL DEFAULT '',
  is_active   BOOLEAN NOT NULL DEFAULT true
);`,
	},
	{
		Name: "create_table_trades",
		SQL: `CREATE TABLE IF NOT EXISTS trades (
  id          UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  branch_id   UUID    NOT NULL REFERENCES branches (id),
  name        TEXT    NOT NULL,
  code        TEXT    NOT NULL,
  description TEXT    NOT NULL DEFAULT '',
  duration    INT     NOT NULL DEFAULT 0,
  is_active   BOOLEAN NOT NULL DEFAULT true
);`,
	},
	{
		Name: "create_table_document_types",
		SQL: `CREATE TABLE IF NOT EXISTS document_types (
  id            UUID    PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT    NOT NULL UNIQUE,
  description   TEXT    NOT NULL DEFAULT '',
  is_required   BOOLEAN NOT NULL DEFAULT true,
  max_file_size BIGINT  NOT NULL DEFAULT 5242880,
  allowed_types TEXT    NOT NULL DEFAULT 'application/pdf,image/jpeg,image/png',
  sort_order    INT     NOT NULL DEFAULT 0,
  is_active     BOOLEAN NOT NULL DEFAULT true
);`,
	},
	{
		Name: "create_table_applications",
		SQL: `CREATE TABLE IF NOT EXISTS applications (
  id                 UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id            UUID        NOT NULL UNIQUE REFERENCES users (id),
  application_number TEXT        NOT NULL UNIQUE,
  country_id         UUID        REFERENCES countries (id),
  state_id           UUID        REFERENCES states (id),
  city_id            UUID        REFERENCES cities (id),
  college_id         UUID        REFERENCES colleges (id),
  branch_id          UUID        REFERENCES branches (id),
  trade_id           UUID        REFERENCES trades (id),
  date_of_birth      DATE,
  gender             TEXT,
  category           TEXT,
  father_name        TEXT,
  mother_name        TEXT,
  guardian_name      TEXT,
  address            TEXT,
  pincode            TEXT,
  status             TEXT        NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'submitted', 'approved', 'rejected')),
  submitted_at       TIMESTAMPTZ,
  approved_at        TIMESTAMPTZ,
  rejected_at        TIMESTAMPTZ,
  rejection_reason   TEXT,
  created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  application_id   UUID        NOT NULL REFERENCES applications (id),
  document_type_id UUID        NOT NULL REFERENCES document_types (id),
  file_name        TEXT        NOT NULL UNIQUE,
  original_name    TEXT        NOT NULL,
  file_path        TEXT        NOT NULL,
  file_size        BIGINT      NOT NULL CHECK (file_size >= 0),
  mime_type        TEXT        NOT NULL,
  uploaded_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  status           TEXT        NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
  approved_by      UUID,
  approved_at      TIMESTAMPTZ,
  rejected_at      TIMESTAMPTZ,
  rejection_reason TEXT,
  admin_notes      TEXT
);`,
	},
	{
		Name: "create_table_fees",
		SQL: `CREATE TABLE IF NOT EXISTS fees (
  id            UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  trade_id      UUID          NOT NULL REFERENCES trades (id),
  fee_type      TEXT          NOT NULL,
  amount        NUMERIC(10,2) NOT NULL CHECK (amount >= 0),
  currency      TEXT          NOT NULL DEFAULT 'INR',
  is_active     BOOLEAN       NOT NULL DEFAULT true,
  academic_year TEXT          NOT NULL DEFAULT ''
);`,
	},
	{
		Name: "create_table_payments",
		SQL: `CREATE TABLE IF NOT EXISTS payments (
  id                 UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  application_id     UUID          NOT NULL REFERENCES applications (id),
  amount             NUMERIC(10,2) NOT NULL CHECK (amount > 0),
  currency           TEXT          NOT NULL DEFAULT 'INR',
  payment_method     TEXT          NOT NULL DEFAULT 'online',
  transaction_id     TEXT,
  status             TEXT          NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'completed', 'failed')),
  installment_number INT           NOT NULL DEFAULT 1,
  total_installments INT           NOT NULL DEFAULT 1,
  paid_at            TIMESTAMPTZ,
  created_at         TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_application_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_application_id ON documents (application_id);`,
	},
	{
		Name: "create_index_payments_application_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_payments_application_id ON payments (application_id, created_at);`,
	},
	{
		Name: "create_index_applications_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_applications_status ON applications (status);`,
	},
	{
		Name: "create_index_fees_trade_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_fees_trade_id ON fees (trade_id);`,
	},
	{
		Name: "create_index_verification_codes_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_verification_codes_email ON verification_codes (email, type);`,
	},
	{
		Name: "seed_country_india",
		SQL:  `INSERT INTO countries (name, code) VALUES ('India', 'IN') ON CONFLICT (code) DO NOTHING;`,
	},
	{
		Name: "seed_state_uttar_pradesh",
		SQL: `INSERT INTO states (country_id, name, code)
SELECT id, 'Uttar Pradesh', 'UP' FROM countries WHERE code = 'IN'
ON CONFLICT (code) DO NOTHING;`,
	},
	{
		Name: "seed_document_types",
		SQL: `INSERT INTO document_types (name, description, is_required, sort_order) VALUES
  ('Birth Certificate', 'Official birth certificate', true, 1),
  ('Identity Proof', 'Aadhaar card or passport', true, 2),
  ('Educational Certificate', 'Last educational qualification certificate', true, 3)
ON CONFLICT (name) DO NOTHING;`,
	},
	{
		Name: "seed_branches",
		SQL: `INSERT INTO branches (name, code, description) VALUES
  ('Engineering', 'ENG', 'Engineering courses'),
  ('Medical', 'MED', 'Medical courses')
ON CONFLICT (code) DO NOTHING;`,
	},
	{
		Name: "create_table_schema_ready",
		SQL:  `CREATE TABLE IF NOT EXISTS schema_ready (applied_at TIMESTAMPTZ NOT NULL DEFAULT now());`,
	},
}

// EnsureMigrated checks for the sentinel table and runs every step when it is missing.
// Steps are idempotent, so a run interrupted halfway is completed on the next start.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()

	logEvent("db_migration_check", "starting", map[string]any{"db_host": dbHost})

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logEvent("db_migration_failed", "error", map[string]any{
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logEvent("db_migration_skip", "success", map[string]any{
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logEvent("db_migration_start", "in_progress", map[string]any{"db_host": dbHost, "steps": len(steps)})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logEvent("db_migration_failed", "error", map[string]any{
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logEvent("db_migration_step", "success", map[string]any{
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logEvent("db_migration_success", "success", map[string]any{
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logEvent(event, status string, fields map[string]any) {
	fields["component"] = "database"
	fields["event"] = event
	fields["status"] = status
	if status == "error" {
		fields["level"] = "error"
	} else {
		fields["level"] = "info"
	}
	logging.JSON(fields)
}
