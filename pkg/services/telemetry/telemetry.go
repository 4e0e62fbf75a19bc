package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceReport = "report"
	SourceLogs   = "logs"

	OutcomeSuccess    = "success"
	OutcomeFailure    = "failure"
	OutcomeSuperseded = "superseded"
)

type Metrics struct {
	// FetchTotal counts applied and discarded fetch results by source and outcome.
	FetchTotal *prometheus.CounterVec

	// ConnectivityState mirrors domain.ConnectivityState (0=initializing .. 3=fatal).
	ConnectivityState prometheus.Gauge

	ZombiesFound     prometheus.Gauge
	PotentialSavings prometheus.Gauge
}

// NewMetrics registers the console metrics on reg. A nil reg gets a private
// registry so callers that do not export metrics need no special casing.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		FetchTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "cloudcull_console_fetch_total",
			Help: "Fetch results received by the console.",
		}, []string{"source", "outcome"}),

		ConnectivityState: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "cloudcull_console_connectivity_state",
			Help: "Connectivity state of the report poller (0=initializing, 1=ready, 2=degraded, 3=fatal).",
		}),

		ZombiesFound: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "cloudcull_console_zombies",
			Help: "Zombie count of the currently displayed report.",
		}),

		PotentialSavings: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "cloudcull_console_potential_savings_usd",
			Help: "Potential monthly savings of the currently displayed report.",
		}),
	}
}

func (m *Metrics) ObserveFetch(source string, outcome string) {
	m.FetchTotal.WithLabelValues(source, outcome).Inc()
}
