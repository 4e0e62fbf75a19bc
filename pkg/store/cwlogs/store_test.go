package cwlogs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFilterer struct {
	mock.Mock
}

func (m *mockFilterer) FilterLogEvents(ctx context.Context, params *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*cloudwatchlogs.FilterLogEventsOutput)
	return out, args.Error(1)
}

func events(msgs ...string) []types.FilteredLogEvent {
	res := make([]types.FilteredLogEvent, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, types.FilteredLogEvent{Message: aws.String(m)})
	}
	return res
}

func firstPage() interface{} {
	return mock.MatchedBy(func(in *cloudwatchlogs.FilterLogEventsInput) bool { return in.NextToken == nil })
}

func page(token string) interface{} {
	return mock.MatchedBy(func(in *cloudwatchlogs.FilterLogEventsInput) bool {
		return aws.ToString(in.NextToken) == token
	})
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		location   string
		wantGroup  string
		wantStream string
		wantErr    bool
	}{
		{location: "cloudwatch://cloudcull-engine", wantGroup: "cloudcull-engine"},
		{location: "cloudwatch:///aws/ecs/cloudcull?stream=engine/1", wantGroup: "/aws/ecs/cloudcull", wantStream: "engine/1"},
		{location: "cloudwatch://", wantErr: true},
		{location: "s3://bucket/key", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			group, stream, err := ParseLocation(tt.location)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantGroup, group)
			assert.Equal(t, tt.wantStream, stream)
		})
	}
}

func TestFetchLogs_JoinsPages(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	client := &mockFilterer{}
	client.On("FilterLogEvents", mock.Anything, firstPage()).Return(&cloudwatchlogs.FilterLogEventsOutput{
		Events:    events("2025-01-01 12:00:00,123 - [CloudCull] - INFO - Scan started\n"),
		NextToken: aws.String("p2"),
	}, nil).Once()
	client.On("FilterLogEvents", mock.Anything, page("p2")).Return(&cloudwatchlogs.FilterLogEventsOutput{
		Events: events("", "2025-01-01 12:00:01,000 - [CloudCull] - INFO - Scan complete"),
	}, nil).Once()

	store := NewWithClient(client, "cloudcull-engine", "engine", WithClock(func() time.Time { return now }))
	body, err := store.FetchLogs(context.Background())

	require.NoError(t, err)
	assert.Equal(t,
		"2025-01-01 12:00:00,123 - [CloudCull] - INFO - Scan started\n2025-01-01 12:00:01,000 - [CloudCull] - INFO - Scan complete",
		body)
	client.AssertExpectations(t)

	first := client.Calls[0].Arguments.Get(1).(*cloudwatchlogs.FilterLogEventsInput)
	assert.Equal(t, "cloudcull-engine", aws.ToString(first.LogGroupName))
	assert.Equal(t, []string{"engine"}, first.LogStreamNames)
	assert.Equal(t, now.Add(-DefaultWindow).UnixMilli(), aws.ToInt64(first.StartTime))
}

func TestFetchLogs_KeepsNewestLines(t *testing.T) {
	client := &mockFilterer{}
	client.On("FilterLogEvents", mock.Anything, mock.Anything).Return(&cloudwatchlogs.FilterLogEventsOutput{
		Events: events("a", "b", "c"),
	}, nil)

	store := NewWithClient(client, "g", "", WithMaxLines(2))
	body, err := store.FetchLogs(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "b\nc", body)
}

func TestFetchLogs_MissingGroupIsEmpty(t *testing.T) {
	client := &mockFilterer{}
	client.On("FilterLogEvents", mock.Anything, mock.Anything).
		Return(nil, &types.ResourceNotFoundException{Message: aws.String("log group does not exist")})

	store := NewWithClient(client, "g", "")
	body, err := store.FetchLogs(context.Background())

	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestFetchLogs_Failure(t *testing.T) {
	client := &mockFilterer{}
	client.On("FilterLogEvents", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

	store := NewWithClient(client, "g", "")
	_, err := store.FetchLogs(context.Background())

	var transportErr *domain.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "FilterLogEvents cloudwatch://g: throttled", err.Error())
}
