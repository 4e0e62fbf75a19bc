package domain

type ConnectivityState int

const (
	// StateInitializing means no report has been received yet.
	StateInitializing ConnectivityState = iota
	// StateReady means the last report fetch succeeded.
	StateReady
	// StateDegraded means the last fetch failed but an earlier report is held.
	StateDegraded
	// StateFatal means no report was ever received and the last fetch failed.
	StateFatal
)

func (s ConnectivityState) String() string {
	switch s {
	case StateInitializing:
		return "INITIALIZING"
	case StateReady:
		return "READY"
	case StateDegraded:
		return "DEGRADED"
	case StateFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// HasData reports whether the view should show a dashboard for this state.
func (s ConnectivityState) HasData() bool {
	return s == StateReady || s == StateDegraded
}
