// Package metrics holds the values derived from an audit report for display.
// Everything here is pure and recomputed on every render.
package metrics

import (
	"math"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
)

const (
	HoursPerDay   = 24
	DaysPerMonth  = 30
	HoursPerMonth = HoursPerDay * DaysPerMonth
)

// MonthlyWaste is the cost of keeping the instance running for a 30 day month.
func MonthlyWaste(inst domain.Instance) float64 {
	return inst.Rate * HoursPerMonth
}

// WasteEfficiencyPercent is the share of zombie instances in the report,
// rounded and clamped to [0, 100]. An empty instance list counts as one.
func WasteEfficiencyPercent(report *domain.AuditReport) int {
	if report == nil {
		return 0
	}
	total := max(len(report.Instances), 1)
	pct := math.Round(float64(report.Summary.ZombieCount) / float64(total) * 100)
	return int(min(max(pct, 0), 100))
}
