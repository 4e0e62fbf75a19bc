package s3report

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGetter struct {
	mock.Mock
}

func (m *mockGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

const reportDoc = `{"summary": {"total_monthly_savings": 10, "zombie_count": 1, "timestamp": "2025-01-01T00:00:00Z"},
 "instances": [{"id": "i-1", "rate": 0.5, "status": "ZOMBIE", "platform": "AWS", "metrics": {"max_cpu": 2, "network_in": 0}}]}`

func matchObject(bucket string, key string) interface{} {
	return mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == bucket && aws.ToString(in.Key) == key
	})
}

func TestParseLocation(t *testing.T) {
	bucket, key, err := ParseLocation("s3://audit-bucket/reports/latest.json")
	require.NoError(t, err)
	assert.Equal(t, "audit-bucket", bucket)
	assert.Equal(t, "reports/latest.json", key)

	for _, bad := range []string{"http://bucket/key", "s3://bucket", "s3:///key", "::"} {
		_, _, err := ParseLocation(bad)
		assert.Error(t, err, bad)
	}
}

func TestFetchReport(t *testing.T) {
	getter := &mockGetter{}
	getter.On("GetObject", mock.Anything, matchObject("audit", "report.json")).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(reportDoc))}, nil)
	store := NewWithClient(getter, "audit", "report.json")

	report, err := store.FetchReport(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Instances, 1)
	assert.Equal(t, "i-1", report.Instances[0].ID)
	getter.AssertExpectations(t)
}

func TestFetchReport_GetObjectFails(t *testing.T) {
	getter := &mockGetter{}
	getter.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied"))
	store := NewWithClient(getter, "audit", "report.json")

	_, err := store.FetchReport(context.Background())

	var transportErr *domain.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "GetObject s3://audit/report.json: AccessDenied", err.Error())
}

func TestFetchReport_MalformedDocument(t *testing.T) {
	getter := &mockGetter{}
	getter.On("GetObject", mock.Anything, mock.Anything).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(`{"error": "No report found"}`))}, nil)
	store := NewWithClient(getter, "audit", "report.json")

	_, err := store.FetchReport(context.Background())

	var parseErr *domain.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, err.Error(), "No report found")
}
