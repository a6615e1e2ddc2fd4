// pkg/connector/connector.go
package connector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// ObjectStore fetches a delimited object from cloud storage and parses it
type ObjectStore interface {
	// Fetch retrieves bucket/key in region using the given credentials
	Fetch(ctx context.Context, bucket, key, region string, creds model.Credentials) (*model.Dataset, error)
}

// Acquirer returns the raw dataset for a resolved source
type Acquirer interface {
	Acquire(ctx context.Context, source model.Source) (*model.Dataset, error)
}

// PingWithTimeout attempts to ping a database with a timeout
func PingWithTimeout(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if pingCtx.Err() != nil {
			return fmt.Errorf("ping timed out after %v: %w", timeout, pingCtx.Err())
		}
		return err
	}
	return nil
}

// ApplyConnectionSettings configures database connection pool settings
func ApplyConnectionSettings(db *sql.DB, maxOpen, maxIdle int, maxLifetime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
}
