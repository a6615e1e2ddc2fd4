// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// EnvironmentLocal selects the public HTTP dataset
	EnvironmentLocal = "local"

	// DefaultS3Bucket is used when S3_BUCKET_NAME is not set
	DefaultS3Bucket = "complaints-datagrid-alee"

	DefaultParamsPath = "params.yaml"
	DefaultEnvFile    = ".env"
	DefaultDataPath   = "./data"
)

// Config represents the application configuration. It is built once at
// startup and passed by value into the stages that need it.
type Config struct {
	// Raw ENVIRONMENT value; empty when unset
	Environment string

	Params *Params

	// Remote source
	AWS AWSConfig

	// S3_BUCKET_NAME, or DefaultS3Bucket when unset
	S3Bucket string
	// True when S3_BUCKET_NAME was set explicitly
	S3BucketFromEnv bool

	// Tracking credentials, loaded but unused by ingestion
	DagshubToken    string
	DagshubUsername string

	// Output root; files go to <DataPath>/raw
	DataPath string

	// Optional run ledger, nil when disabled
	Ledger *LedgerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// AWSConfig holds the AWS settings read from the environment
type AWSConfig struct {
	AccessKey   string
	SecretKey   string
	EndpointURL string // Optional S3-compatible endpoint
}

// LoadOptions tells LoadConfig where to find its inputs
type LoadOptions struct {
	ParamsPath string
	EnvFile    string
	DataPath   string
}

// LoadConfig loads the .env file (if present), the environment and the
// params file. All missing required params are reported in one error.
// AWS credentials are not checked here; the remote source validates them
// before any network call.
func LoadConfig(opts LoadOptions) (*Config, error) {
	if opts.ParamsPath == "" {
		opts.ParamsPath = DefaultParamsPath
	}
	if opts.EnvFile == "" {
		opts.EnvFile = DefaultEnvFile
	}
	if opts.DataPath == "" {
		opts.DataPath = DefaultDataPath
	}

	// Variables from CI/CD take precedence; the file is optional
	if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
	}

	params, err := LoadParams(opts.ParamsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load params: %w", err)
	}

	cfg := &Config{
		Environment: os.Getenv("ENVIRONMENT"),
		Params:      params,
		AWS: AWSConfig{
			AccessKey:   os.Getenv("AWS_ACCESS_KEY"),
			SecretKey:   os.Getenv("AWS_SECRET_KEY"),
			EndpointURL: os.Getenv("AWS_ENDPOINT_URL"),
		},
		S3Bucket:        getEnv("S3_BUCKET_NAME", DefaultS3Bucket),
		S3BucketFromEnv: os.Getenv("S3_BUCKET_NAME") != "",
		DagshubToken:    os.Getenv("DAGSHUB_ACCESS_TOKEN"),
		DagshubUsername: os.Getenv("DAGSHUB_USERNAME"),
		DataPath:        opts.DataPath,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	ledgerCfg, err := LoadLedgerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger configuration: %w", err)
	}
	cfg.Ledger = ledgerCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	var errs []error

	if c.Params == nil {
		errs = append(errs, errors.New("params are required"))
	} else if err := c.Params.Validate(); err != nil {
		errs = append(errs, err)
	}

	if c.DataPath == "" {
		errs = append(errs, errors.New("data path is required"))
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// BucketName returns the bucket holding the remote dataset. An explicit
// S3_BUCKET_NAME overrides bucket.name from params.
func (c *Config) BucketName() string {
	if c.S3BucketFromEnv {
		return c.S3Bucket
	}
	return c.Params.BucketName()
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
