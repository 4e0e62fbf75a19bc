package dashboard

import (
	"errors"
	"time"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
)

var errEmptyReport = errors.New("empty report")

// State is the per-session view state. It is owned by the coordinator
// goroutine and changes only through ApplyReport and ApplyLogs.
type State struct {
	connectivity domain.ConnectivityState
	report       *domain.AuditReport
	err          error

	// last applied request sequence per source
	reportSeq uint64
	logSeq    uint64

	realLogs     []domain.LogEntry
	seenRealLogs bool
}

func NewState() *State {
	return &State{connectivity: domain.StateInitializing}
}

// ApplyReport applies a report fetch result. It returns false when the
// result belongs to a request superseded by one already applied.
func (s *State) ApplyReport(ev ReportFetched) bool {
	if ev.Seq <= s.reportSeq {
		return false
	}
	s.reportSeq = ev.Seq

	if ev.Err == nil && ev.Report != nil {
		s.report = ev.Report
		s.connectivity = domain.StateReady
		s.err = nil
		return true
	}

	if s.report != nil {
		s.connectivity = domain.StateDegraded
		s.err = nil
		return true
	}

	s.connectivity = domain.StateFatal
	s.err = ev.Err
	if s.err == nil {
		s.err = errEmptyReport
	}
	return true
}

// ApplyLogs applies a log fetch result. Failures and empty bodies leave the
// current log untouched.
func (s *State) ApplyLogs(ev LogsFetched) bool {
	if ev.Seq <= s.logSeq {
		return false
	}
	s.logSeq = ev.Seq

	if ev.Err != nil || len(ev.Entries) == 0 {
		return true
	}
	s.realLogs = ev.Entries
	s.seenRealLogs = true
	return true
}

func (s *State) Connectivity() domain.ConnectivityState {
	return s.connectivity
}

func (s *State) Snapshot(at time.Time) Snapshot {
	snap := Snapshot{
		State:        s.connectivity,
		Report:       s.report,
		RealLogs:     s.realLogs,
		SeenRealLogs: s.seenRealLogs,
		UpdatedAt:    at,
	}
	if s.connectivity == domain.StateFatal && s.err != nil {
		snap.Err = s.err.Error()
	}
	return snap
}

// Snapshot is an immutable copy of State handed to renderers.
type Snapshot struct {
	State        domain.ConnectivityState
	Report       *domain.AuditReport
	Err          string
	RealLogs     []domain.LogEntry
	SeenRealLogs bool
	UpdatedAt    time.Time
}

// LogEntries returns the log to display at the given render time: the real
// entries once any have been seen, otherwise entries synthesized from the
// current report.
func (s Snapshot) LogEntries(now time.Time) []domain.LogEntry {
	if s.SeenRealLogs {
		return s.RealLogs
	}
	return FallbackEntries(s.Report, now)
}

// Synthetic reports whether LogEntries would return synthesized entries.
func (s Snapshot) Synthetic() bool {
	return !s.SeenRealLogs && s.Report != nil && len(s.Report.Instances) > 0
}
