// pkg/connector/s3.go
package connector

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/David-Botos/sentiment-ingress/pkg/model"
)

// ErrCredentialsNotSet is returned before any network call when either AWS key is missing
var ErrCredentialsNotSet = errors.New("AWS credentials are not set")

// AwsObjectStore is an ObjectStore backed by the AWS S3 API
type AwsObjectStore struct {
	// EndpointURL points the client at an S3-compatible store; path-style
	// addressing is used when set
	EndpointURL string
	// HTTPClient overrides the SDK's default transport when set
	HTTPClient aws.HTTPClient
}

// NewAwsObjectStore creates an AwsObjectStore
func NewAwsObjectStore(endpointURL string) *AwsObjectStore {
	return &AwsObjectStore{EndpointURL: endpointURL}
}

// Fetch downloads bucket/key and parses it as CSV
func (s *AwsObjectStore) Fetch(ctx context.Context, bucket, key, region string, creds model.Credentials) (*model.Dataset, error) {
	client, err := s.newClient(ctx, region, creds)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	return DecodeCSV(out.Body)
}

func (s *AwsObjectStore) newClient(ctx context.Context, region string, creds model.Credentials) (*s3.Client, error) {
	configOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, ""),
		),
		// failures surface to the operator; nothing is retried
		awsconfig.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if s.HTTPClient != nil {
		configOptions = append(configOptions, awsconfig.WithHTTPClient(s.HTTPClient))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.EndpointURL != "" {
			o.BaseEndpoint = aws.String(s.EndpointURL)
			o.UsePathStyle = true
		}
	}), nil
}

// S3Source acquires the dataset from object storage
type S3Source struct {
	store  ObjectStore
	logger *zap.Logger
}

// NewS3Source creates an S3Source over the given store
func NewS3Source(store ObjectStore, logger *zap.Logger) *S3Source {
	return &S3Source{
		store:  store,
		logger: logger.Named("s3-source"),
	}
}

// Fetch validates credentials, then delegates to the object store
func (s *S3Source) Fetch(ctx context.Context, src model.RemoteSource) (*model.Dataset, error) {
	location := src.Location()

	if !src.Credentials.Complete() {
		err := model.NewStageError(model.KindConfiguration, "acquire", ErrCredentialsNotSet).WithInput(location)
		s.logger.Error("AWS credentials are not set in environment variables",
			zap.Bool("access_key_set", src.Credentials.AccessKey != ""),
			zap.Bool("secret_key_set", src.Credentials.SecretKey != ""))
		return nil, err
	}

	s.logger.Info("Fetching dataset from S3",
		zap.String("bucket", src.Bucket),
		zap.String("key", src.Key),
		zap.String("region", src.Region))

	ds, err := s.store.Fetch(ctx, src.Bucket, src.Key, src.Region, src.Credentials)
	if err != nil {
		var se *model.StageError
		if !errors.As(err, &se) {
			se = model.NewStageError(model.KindAcquisition, "acquire", err)
			err = se
		}
		se.WithInput(location)

		fields := []zap.Field{zap.String("location", location), zap.Error(err)}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			fields = append(fields, zap.String("aws_error_code", apiErr.ErrorCode()))
		}
		s.logger.Error("Failed to fetch dataset from S3", fields...)
		return nil, err
	}

	s.logger.Info("Data loaded",
		zap.String("location", location),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Header)))
	return ds, nil
}
