// pkg/config/params.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRandomState is the split seed used when params.yaml does not set one
const DefaultRandomState int64 = 42

// Params mirrors params.yaml. Required keys are pointers so that an absent
// key can be told apart from a zero value.
type Params struct {
	Bucket             BucketParams             `yaml:"bucket"`
	FeatureEngineering FeatureEngineeringParams `yaml:"feature_engineering"`
	DataIngestion      DataIngestionParams      `yaml:"data_ingestion"`
	FileName           *string                  `yaml:"file_name"`

	// Tracking keys are loaded but not used by ingestion
	MLflow     MLflowParams     `yaml:"mlflow"`
	Repository RepositoryParams `yaml:"repository"`
}

// BucketParams locates the remote dataset
type BucketParams struct {
	Name   *string `yaml:"name"`
	Region *string `yaml:"region"`
}

// FeatureEngineeringParams is consumed by later pipeline stages
type FeatureEngineeringParams struct {
	MaxFeatures *int `yaml:"max_features"`
}

// DataIngestionParams controls the train/test split
type DataIngestionParams struct {
	TestSize    *float64 `yaml:"test_size"`
	RandomState *int64   `yaml:"random_state"`
}

// MLflowParams configures experiment tracking
type MLflowParams struct {
	TrackingURI string `yaml:"tracking_uri"`
}

// RepositoryParams names the tracking repository
type RepositoryParams struct {
	Owner string `yaml:"owner"`
	Name  string `yaml:"name"`
}

// LoadParams reads and validates a params file
func LoadParams(path string) (*Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file %s: %w", path, err)
	}
	return ParseParams(data)
}

// ParseParams decodes params YAML and validates it. Keys used by other
// pipeline stages are ignored.
func ParseParams(data []byte) (*Params, error) {
	var p Params
	// An empty document decodes to io.EOF; let validation report the missing keys
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse params: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate reports every missing or invalid required key at once
func (p *Params) Validate() error {
	var missing []string
	if p.Bucket.Name == nil || *p.Bucket.Name == "" {
		missing = append(missing, "bucket.name")
	}
	if p.Bucket.Region == nil || *p.Bucket.Region == "" {
		missing = append(missing, "bucket.region")
	}
	if p.FeatureEngineering.MaxFeatures == nil {
		missing = append(missing, "feature_engineering.max_features")
	}
	if p.DataIngestion.TestSize == nil {
		missing = append(missing, "data_ingestion.test_size")
	}
	if p.FileName == nil || *p.FileName == "" {
		missing = append(missing, "file_name")
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required parameters: %s", strings.Join(missing, ", ")))
	}

	if ts := p.DataIngestion.TestSize; ts != nil && (*ts <= 0 || *ts >= 1) {
		errs = append(errs, fmt.Errorf("data_ingestion.test_size must be between 0 and 1 exclusive, got %v", *ts))
	}
	if mf := p.FeatureEngineering.MaxFeatures; mf != nil && *mf <= 0 {
		errs = append(errs, fmt.Errorf("feature_engineering.max_features must be positive, got %d", *mf))
	}

	return errors.Join(errs...)
}

// Accessors below assume Validate has passed

func (p *Params) BucketName() string {
	return *p.Bucket.Name
}

func (p *Params) Region() string {
	return *p.Bucket.Region
}

func (p *Params) MaxFeatures() int {
	return *p.FeatureEngineering.MaxFeatures
}

func (p *Params) TestSize() float64 {
	return *p.DataIngestion.TestSize
}

func (p *Params) ObjectKey() string {
	return *p.FileName
}

func (p *Params) TrackingURI() string {
	return p.MLflow.TrackingURI
}

// RandomState returns the configured split seed or DefaultRandomState
func (p *Params) RandomState() int64 {
	if p.DataIngestion.RandomState == nil {
		return DefaultRandomState
	}
	return *p.DataIngestion.RandomState
}
