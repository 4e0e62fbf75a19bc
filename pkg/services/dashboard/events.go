package dashboard

import (
	"context"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
)

// ReportSource fetches the current audit report. Implementations must return
// promptly once ctx is cancelled; pollers wait for in-flight fetches on
// shutdown.
type ReportSource interface {
	FetchReport(ctx context.Context) (*domain.AuditReport, error)
}

// LogSource returns the raw newline-delimited log text. An empty body means
// the backend has no logs yet. Like ReportSource, implementations must honor
// ctx cancellation.
type LogSource interface {
	FetchLogs(ctx context.Context) (string, error)
}

// Event is a fetch result travelling from a poller to the coordinator.
type Event interface {
	sequence() uint64
}

// ReportFetched carries the outcome of a single report request. Seq is taken
// when the request is issued, not when it completes.
type ReportFetched struct {
	Seq    uint64
	Report *domain.AuditReport
	Err    error
}

func (e ReportFetched) sequence() uint64 { return e.Seq }

// LogsFetched carries the parsed outcome of a single log request.
type LogsFetched struct {
	Seq     uint64
	Entries []domain.LogEntry
	Err     error
}

func (e LogsFetched) sequence() uint64 { return e.Seq }
