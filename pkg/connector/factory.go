// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/config"
	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// DefaultDatasetURL is the public dataset used when ENVIRONMENT=local
const DefaultDatasetURL = "https://raw.githubusercontent.com/vikashishere/Datasets/refs/heads/main/data.csv"

// SourceSettings are the configuration values source selection depends on
type SourceSettings struct {
	Environment string
	Bucket      string
	Key         string
	Region      string
	Credentials model.Credentials
}

// SourceSettingsFromConfig extracts the source settings from the loaded config
func SourceSettingsFromConfig(cfg *config.Config) SourceSettings {
	return SourceSettings{
		Environment: cfg.Environment,
		Bucket:      cfg.BucketName(),
		Key:         cfg.Params.ObjectKey(),
		Region:      cfg.Params.Region(),
		Credentials: model.Credentials{
			AccessKey: cfg.AWS.AccessKey,
			SecretKey: cfg.AWS.SecretKey,
		},
	}
}

// ResolveSource picks the dataset source for this run. Only the exact value
// "local" selects the public URL; anything else, including an unset
// environment, selects the production bucket.
func ResolveSource(settings SourceSettings, logger *zap.Logger) model.Source {
	if settings.Environment == config.EnvironmentLocal {
		return model.LocalSource{URL: DefaultDatasetURL}
	}

	if settings.Environment == "" {
		logger.Warn("ENVIRONMENT not set, running against production by default")
	}

	return model.RemoteSource{
		Bucket:      settings.Bucket,
		Key:         settings.Key,
		Region:      settings.Region,
		Credentials: settings.Credentials,
	}
}

// SourceFactory dispatches acquisition to the source implementation
type SourceFactory struct {
	http   *HTTPSource
	s3     *S3Source
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(httpSource *HTTPSource, s3Source *S3Source, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		http:   httpSource,
		s3:     s3Source,
		logger: logger,
	}
}

// Acquire fetches the dataset from the given source
func (f *SourceFactory) Acquire(ctx context.Context, source model.Source) (*model.Dataset, error) {
	f.logger.Info("Acquiring dataset",
		zap.String("source", string(source.Kind())),
		zap.String("location", source.Location()))

	switch src := source.(type) {
	case model.LocalSource:
		return f.http.Fetch(ctx, src)
	case model.RemoteSource:
		return f.s3.Fetch(ctx, src)
	default:
		return nil, model.NewStageError(model.KindConfiguration, "acquire",
			fmt.Errorf("unsupported source %T", source))
	}
}
