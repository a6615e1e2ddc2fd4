// pkg/ingest/build.go
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/cleaner"
	"github.com/David-Botos/sentiment-ingress/pkg/config"
	"github.com/David-Botos/sentiment-ingress/pkg/connector"
	"github.com/David-Botos/sentiment-ingress/pkg/converter"
	"github.com/David-Botos/sentiment-ingress/pkg/ledger"
	"github.com/David-Botos/sentiment-ingress/pkg/writer"
)

// Build wires a Pipeline from the loaded configuration. The returned close
// function releases the ledger connection, if any.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Pipeline, func() error, error) {
	httpSource := connector.NewHTTPSource(nil, logger)
	s3Source := connector.NewS3Source(connector.NewAwsObjectStore(cfg.AWS.EndpointURL), logger)
	factory := connector.NewSourceFactory(httpSource, s3Source, logger)

	dataCleaner, err := cleaner.NewSentimentCleaner(converter.NewLabelEncoder(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cleaner: %w", err)
	}

	closeFn := func() error { return nil }
	var opts []Option

	if cfg.Ledger != nil {
		conn, err := connector.NewPostgresConnector(ctx, cfg.Ledger, logger)
		if err != nil {
			logger.Warn("Run ledger unavailable, continuing without it", zap.Error(err))
		} else {
			runLedger, err := ledger.NewPostgresLedger(ctx, conn.DB(), cfg.Ledger.Table, logger)
			if err != nil {
				logger.Warn("Run ledger unavailable, continuing without it", zap.Error(err))
				conn.Close()
			} else {
				opts = append(opts, WithLedger(runLedger))
				closeFn = conn.Close
			}
		}
	}

	p := NewPipeline(
		SettingsFromConfig(cfg),
		factory,
		dataCleaner,
		writer.NewCSVWriter(logger),
		logger,
		opts...,
	)
	return p, closeFn, nil
}
