package s3report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/cloudcull-console/pkg/adapters"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	Scheme      = "s3"
	maxBodySize = 8 << 20
)

type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store reads the audit report document the engine uploads to S3.
type Store struct {
	client ObjectGetter
	bucket string
	key    string
}

// New builds a Store for an s3://bucket/key location using the default AWS
// credential chain.
func New(ctx context.Context, location string, region string) (*Store, error) {
	bucket, key, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	opts = append(opts, config.WithRetryMode(aws.RetryModeStandard))

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return NewWithClient(s3.NewFromConfig(cfg), bucket, key), nil
}

func NewWithClient(client ObjectGetter, bucket string, key string) *Store {
	return &Store{client: client, bucket: bucket, key: key}
}

// ParseLocation splits s3://bucket/key.
func ParseLocation(location string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 location %q: %w", location, err)
	}
	if u.Scheme != Scheme {
		return "", "", fmt.Errorf("invalid s3 location %q: scheme must be %s", location, Scheme)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q: want s3://bucket/key", location)
	}
	return u.Host, key, nil
}

func (s *Store) Location() string {
	return fmt.Sprintf("%s://%s/%s", Scheme, s.bucket, s.key)
}

func (s *Store) FetchReport(ctx context.Context) (*domain.AuditReport, error) {
	logger := zerolog.Ctx(ctx)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, &domain.TransportError{Op: "GetObject", URL: s.Location(), Err: err}
	}
	if out.Body == nil {
		return nil, &domain.TransportError{Op: "GetObject", URL: s.Location(), Err: errors.New("empty object body")}
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close object body")
		}
	}(out.Body)

	data, err := io.ReadAll(io.LimitReader(out.Body, maxBodySize))
	if err != nil {
		return nil, &domain.TransportError{Op: "GetObject", URL: s.Location(), Err: err}
	}

	return adapters.DecodeAuditReport("report", data)
}
