// pkg/connector/http.go
package connector

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// HTTPSource downloads a delimited dataset from a public URL
type HTTPSource struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPSource creates an HTTPSource. A nil client means http.DefaultClient;
// no timeout is added on top of the transport's own.
func NewHTTPSource(client *http.Client, logger *zap.Logger) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		client: client,
		logger: logger.Named("http-source"),
	}
}

// Fetch downloads and parses the file at src.URL
func (s *HTTPSource) Fetch(ctx context.Context, src model.LocalSource) (*model.Dataset, error) {
	ds, err := s.fetch(ctx, src.URL)
	if err != nil {
		var se *model.StageError
		if errors.As(err, &se) {
			se.WithInput(src.URL)
		}
		if model.KindOf(err) == model.KindParse {
			s.logger.Error("Failed to parse the CSV file", zap.String("url", src.URL), zap.Error(err))
		} else {
			s.logger.Error("Unexpected error occurred while loading the data", zap.String("url", src.URL), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Data loaded",
		zap.String("url", src.URL),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Header)))
	return ds, nil
}

func (s *HTTPSource) fetch(ctx context.Context, url string) (*model.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, model.NewStageError(model.KindAcquisition, "acquire", fmt.Errorf("failed to build request: %w", err))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, model.NewStageError(model.KindAcquisition, "acquire", fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, model.NewStageError(model.KindAcquisition, "acquire",
			fmt.Errorf("unexpected HTTP status %d", resp.StatusCode))
	}

	return DecodeCSV(resp.Body)
}
