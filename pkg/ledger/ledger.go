// pkg/ledger/ledger.go
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// Recorder persists the outcome of ingestion runs
type Recorder interface {
	Record(ctx context.Context, run *model.RunRecord) error
}

// PostgresLedger records runs in a PostgreSQL table
type PostgresLedger struct {
	db     *sqlx.DB
	table  string
	logger *zap.Logger
}

// runRow is the database shape of a RunRecord
type runRow struct {
	RunID          string    `db:"run_id"`
	Environment    string    `db:"environment"`
	SourceKind     string    `db:"source_kind"`
	SourceLocation string    `db:"source_location"`
	RowsRead       int       `db:"rows_read"`
	RowsKept       int       `db:"rows_kept"`
	RowsDropped    int       `db:"rows_dropped"`
	TrainRows      int       `db:"train_rows"`
	TestRows       int       `db:"test_rows"`
	OutputDir      string    `db:"output_dir"`
	Status         string    `db:"status"`
	FailedStage    string    `db:"failed_stage"`
	ErrorKind      string    `db:"error_kind"`
	ErrorMessage   string    `db:"error_message"`
	StartedAt      time.Time `db:"started_at"`
	FinishedAt     time.Time `db:"finished_at"`
}

func toRow(r *model.RunRecord) runRow {
	return runRow{
		RunID:          r.RunID,
		Environment:    r.Environment,
		SourceKind:     string(r.SourceKind),
		SourceLocation: r.SourceLocation,
		RowsRead:       r.RowsRead,
		RowsKept:       r.RowsKept,
		RowsDropped:    r.RowsDropped,
		TrainRows:      r.TrainRows,
		TestRows:       r.TestRows,
		OutputDir:      r.OutputDir,
		Status:         string(r.Status),
		FailedStage:    r.FailedStage,
		ErrorKind:      r.ErrorKind,
		ErrorMessage:   r.ErrorMessage,
		StartedAt:      r.StartedAt,
		FinishedAt:     r.FinishedAt,
	}
}

// NewPostgresLedger creates a ledger and ensures its table exists
func NewPostgresLedger(ctx context.Context, db *sqlx.DB, table string, logger *zap.Logger) (*PostgresLedger, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if table == "" {
		return nil, errors.New("ledger table name cannot be empty")
	}

	l := &PostgresLedger{
		db:     db,
		table:  table,
		logger: logger.Named("ledger"),
	}

	if err := l.setupTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to setup ledger table: %w", err)
	}

	return l, nil
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id SERIAL PRIMARY KEY,
			run_id UUID NOT NULL UNIQUE,
			environment TEXT NOT NULL,
			source_kind TEXT NOT NULL,
			source_location TEXT NOT NULL,
			rows_read INTEGER NOT NULL,
			rows_kept INTEGER NOT NULL,
			rows_dropped INTEGER NOT NULL,
			train_rows INTEGER NOT NULL,
			test_rows INTEGER NOT NULL,
			output_dir TEXT NOT NULL,
			status TEXT NOT NULL,
			failed_stage TEXT NOT NULL,
			error_kind TEXT NOT NULL,
			error_message TEXT NOT NULL,
			started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			finished_at TIMESTAMP WITH TIME ZONE NOT NULL,
			recorded_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`, pq.QuoteIdentifier(table))
}

func insertSQL(table string) string {
	return fmt.Sprintf(`
		INSERT INTO %s (
			run_id, environment, source_kind, source_location,
			rows_read, rows_kept, rows_dropped, train_rows, test_rows,
			output_dir, status, failed_stage, error_kind, error_message,
			started_at, finished_at
		) VALUES (
			:run_id, :environment, :source_kind, :source_location,
			:rows_read, :rows_kept, :rows_dropped, :train_rows, :test_rows,
			:output_dir, :status, :failed_stage, :error_kind, :error_message,
			:started_at, :finished_at
		)
	`, pq.QuoteIdentifier(table))
}

func (l *PostgresLedger) setupTable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := l.db.ExecContext(ctx, createTableSQL(l.table)); err != nil {
		return fmt.Errorf("failed to create ledger table: %w", err)
	}

	l.logger.Info("Ensured ledger table exists", zap.String("table", l.table))
	return nil
}

// Record inserts the run into the ledger table
func (l *PostgresLedger) Record(ctx context.Context, run *model.RunRecord) error {
	if run == nil {
		return errors.New("run record cannot be nil")
	}

	if _, err := l.db.NamedExecContext(ctx, insertSQL(l.table), toRow(run)); err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.RunID, err)
	}

	l.logger.Info("Recorded ingestion run",
		zap.String("run_id", run.RunID),
		zap.String("status", string(run.Status)),
		zap.Duration("duration", run.Duration()))
	return nil
}
