package connector

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/config"
)

func TestApplyConnectionSettings(t *testing.T) {
	// sql.Open does not connect
	db, err := sql.Open("pgx", "host=127.0.0.1 port=1 user=x dbname=x sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	ApplyConnectionSettings(db, 3, 1, time.Minute)
	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
}

func TestNewPostgresConnector_Unreachable(t *testing.T) {
	cfg := &config.LedgerConfig{
		Host:         "127.0.0.1",
		Port:         1,
		User:         "ingest",
		Password:     "pw",
		Database:     "mlops",
		SSLMode:      "disable",
		MaxOpenConns: 1,
	}

	_, err := NewPostgresConnector(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestPostgresConnector_CloseWithoutDB(t *testing.T) {
	c := &PostgresConnector{logger: zap.NewNop()}
	assert.NoError(t, c.Close())
}
