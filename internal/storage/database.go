package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ledes/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNotConfigured is returned by Open when no DSN is present.
var ErrNotConfigured = errors.New("record store not configured")

// Open connects to the record store described by cfg.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, ErrNotConfigured
	}

	var (
		db  *sql.DB
		err error
	)

	switch strings.ToLower(cfg.Driver) {
	case "postgres":
		db, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
	case "sqlite", "sqlite3":
		db, err = sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		// every pooled connection to :memory: would otherwise be its own database
		if strings.Contains(cfg.DSN, ":memory:") {
			db.SetMaxOpenConns(1)
		}
	case "mysql":
		db, err = sql.Open("mysql", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate ensures the record tables are present.
func Migrate(db *sql.DB, driver string) error {
	var stmts []string
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS entities (
				id TEXT PRIMARY KEY,
				company_name TEXT NOT NULL,
				home_state TEXT NOT NULL,
				states_qualified TEXT NOT NULL DEFAULT '[]',
				next_compliance_date DATE NOT NULL,
				internal_owner TEXT,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS contracts (
				id TEXT PRIMARY KEY,
				contract_name TEXT NOT NULL,
				contract_type TEXT NOT NULL,
				counterparty TEXT NOT NULL,
				expiration_date DATE NOT NULL,
				status TEXT NOT NULL,
				contract_value REAL,
				auto_renew BOOLEAN NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS legal_bills (
				id TEXT PRIMARY KEY,
				law_firm_name TEXT NOT NULL,
				invoice_number TEXT NOT NULL,
				amount REAL NOT NULL,
				due_date DATE NOT NULL,
				status TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS contract_playbook (
				id TEXT PRIMARY KEY,
				clause_category TEXT NOT NULL,
				clause_name TEXT NOT NULL,
				position TEXT NOT NULL,
				guidance TEXT NOT NULL,
				example_language TEXT,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_entities_compliance ON entities(next_compliance_date)`,
			`CREATE INDEX IF NOT EXISTS idx_contracts_expiration ON contracts(expiration_date)`,
			`CREATE INDEX IF NOT EXISTS idx_legal_bills_due ON legal_bills(due_date)`,
		}
	case "postgres":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS entities (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				company_name TEXT NOT NULL,
				home_state TEXT NOT NULL,
				states_qualified TEXT[] NOT NULL DEFAULT '{}',
				next_compliance_date DATE NOT NULL,
				internal_owner TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE IF NOT EXISTS contracts (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				contract_name TEXT NOT NULL,
				contract_type TEXT NOT NULL,
				counterparty TEXT NOT NULL,
				expiration_date DATE NOT NULL,
				status TEXT NOT NULL,
				contract_value NUMERIC,
				auto_renew BOOLEAN NOT NULL DEFAULT false,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE IF NOT EXISTS legal_bills (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				law_firm_name TEXT NOT NULL,
				invoice_number TEXT NOT NULL,
				amount NUMERIC NOT NULL,
				due_date DATE NOT NULL,
				status TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE IF NOT EXISTS contract_playbook (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				clause_category TEXT NOT NULL,
				clause_name TEXT NOT NULL,
				position TEXT NOT NULL CHECK (position IN ('accept', 'reject', 'negotiate')),
				guidance TEXT NOT NULL,
				example_language TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX IF NOT EXISTS idx_entities_compliance ON entities(next_compliance_date)`,
			`CREATE INDEX IF NOT EXISTS idx_contracts_expiration ON contracts(expiration_date)`,
			`CREATE INDEX IF NOT EXISTS idx_legal_bills_due ON legal_bills(due_date)`,
		}
	case "mysql":
		stmts = []string{
			`CREATE TABLE IF NOT EXISTS entities (
				id VARCHAR(36) NOT NULL,
				company_name VARCHAR(255) NOT NULL,
				home_state VARCHAR(100) NOT NULL,
				states_qualified JSON NOT NULL,
				next_compliance_date DATE NOT NULL,
				internal_owner VARCHAR(255),
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (id),
				INDEX idx_entities_compliance (next_compliance_date)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS contracts (
				id VARCHAR(36) NOT NULL,
				contract_name VARCHAR(255) NOT NULL,
				contract_type VARCHAR(100) NOT NULL,
				counterparty VARCHAR(255) NOT NULL,
				expiration_date DATE NOT NULL,
				status VARCHAR(50) NOT NULL,
				contract_value DECIMAL(18,2),
				auto_renew BOOLEAN NOT NULL DEFAULT FALSE,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (id),
				INDEX idx_contracts_expiration (expiration_date)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS legal_bills (
				id VARCHAR(36) NOT NULL,
				law_firm_name VARCHAR(255) NOT NULL,
				invoice_number VARCHAR(100) NOT NULL,
				amount DECIMAL(18,2) NOT NULL,
				due_date DATE NOT NULL,
				status VARCHAR(50) NOT NULL,
				description TEXT NOT NULL,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (id),
				INDEX idx_legal_bills_due (due_date)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS contract_playbook (
				id VARCHAR(36) NOT NULL,
				clause_category VARCHAR(100) NOT NULL,
				clause_name VARCHAR(255) NOT NULL,
				position VARCHAR(20) NOT NULL,
				guidance TEXT NOT NULL,
				example_language TEXT,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				PRIMARY KEY (id)
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		}
	default:
		return fmt.Errorf("unsupported driver for migration: %s", driver)
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate (%s): %w", driver, err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders into $n for postgres.
func rebind(driver, query string) string {
	if strings.ToLower(driver) != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
