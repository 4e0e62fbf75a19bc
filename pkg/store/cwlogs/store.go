package cwlogs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
)

const (
	Scheme = "cloudwatch"

	DefaultWindow   = 15 * time.Minute
	DefaultMaxLines = 500
)

type EventFilterer interface {
	FilterLogEvents(ctx context.Context, params *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

// Store tails the engine log group. Each fetch returns the events of the
// trailing window as one newline-delimited body, oldest first.
type Store struct {
	client   EventFilterer
	group    string
	stream   string
	window   time.Duration
	maxLines int
	now      func() time.Time
}

type Option func(*Store)

func WithWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.window = d
		}
	}
}

func WithMaxLines(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxLines = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds a Store for a cloudwatch://<log-group>[?stream=<name>] location.
func New(ctx context.Context, location string, region string, opts ...Option) (*Store, error) {
	group, stream, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}

	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return NewWithClient(cloudwatchlogs.NewFromConfig(cfg), group, stream, opts...), nil
}

func NewWithClient(client EventFilterer, group string, stream string, opts ...Option) *Store {
	s := &Store{
		client:   client,
		group:    group,
		stream:   stream,
		window:   DefaultWindow,
		maxLines: DefaultMaxLines,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseLocation splits cloudwatch://<log-group>[?stream=<name>]. Group names
// may contain slashes, cloudwatch:///aws/ecs/engine names "/aws/ecs/engine".
func ParseLocation(location string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid cloudwatch location %q: %w", location, err)
	}
	if u.Scheme != Scheme {
		return "", "", fmt.Errorf("invalid cloudwatch location %q: scheme must be %s", location, Scheme)
	}
	group := u.Host + u.Path
	if group == "" {
		return "", "", fmt.Errorf("invalid cloudwatch location %q: missing log group", location)
	}
	return group, u.Query().Get("stream"), nil
}

func (s *Store) FetchLogs(ctx context.Context) (string, error) {
	input := &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName: aws.String(s.group),
		StartTime:    aws.Int64(s.now().Add(-s.window).UnixMilli()),
	}
	if s.stream != "" {
		input.LogStreamNames = []string{s.stream}
	}

	var lines []string
	for {
		resp, err := s.client.FilterLogEvents(ctx, input)
		if err != nil {
			var notFound *types.ResourceNotFoundException
			if errors.As(err, &notFound) {
				// the engine has not written anything yet
				return "", nil
			}
			return "", &domain.TransportError{Op: "FilterLogEvents", URL: s.location(), Err: err}
		}

		for _, ev := range resp.Events {
			msg := strings.TrimRight(aws.ToString(ev.Message), "\r\n")
			if msg != "" {
				lines = append(lines, msg)
			}
		}

		next := aws.ToString(resp.NextToken)
		if next == "" || next == aws.ToString(input.NextToken) {
			break
		}
		input.NextToken = aws.String(next)
	}

	if len(lines) > s.maxLines {
		lines = lines[len(lines)-s.maxLines:]
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Store) location() string {
	return fmt.Sprintf("%s://%s", Scheme, s.group)
}
