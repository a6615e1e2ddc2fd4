// pkg/config/database.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultLedgerTable is the table ingestion runs are recorded in
const DefaultLedgerTable = "ingestion_runs"

// LedgerConfig holds PostgreSQL connection parameters for the run ledger
type LedgerConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Table    string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Statement timeout
	StatementTimeout time.Duration
}

// LoadLedgerConfig loads the ledger configuration from environment variables.
// It returns nil when LEDGER_ENABLED is not true.
func LoadLedgerConfig() (*LedgerConfig, error) {
	if !getEnvAsBool("LEDGER_ENABLED", false) {
		return nil, nil
	}

	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		return nil, errors.New("POSTGRES_USER environment variable is required")
	}

	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		return nil, errors.New("POSTGRES_PASSWORD environment variable is required")
	}

	database := os.Getenv("POSTGRES_DB")
	if database == "" {
		return nil, errors.New("POSTGRES_DB environment variable is required")
	}

	cfg := &LedgerConfig{
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getEnvAsInt("POSTGRES_PORT", 5432),
		User:     user,
		Password: password,
		Database: database,
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		Table:    getEnv("LEDGER_TABLE", DefaultLedgerTable),

		MaxOpenConns:     getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 2),
		MaxIdleConns:     getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 1),
		ConnMaxLifetime:  time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
		StatementTimeout: time.Duration(getEnvAsInt("POSTGRES_STATEMENT_TIMEOUT_SECONDS", 30)) * time.Second,
	}

	return cfg, nil
}

// ConnectionString returns a formatted PostgreSQL connection string. The
// statement timeout is passed as a runtime parameter so it applies to every
// pooled connection.
func (c *LedgerConfig) ConnectionString() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)

	if c.StatementTimeout > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", c.StatementTimeout.Milliseconds())
	}

	return dsn
}
