// Package view turns coordinator snapshots into a presentation tree. The
// terminal UI, the text export and the JSON API all draw from the same tree.
package view

import (
	"fmt"
	"math"
	"time"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"github.com/de-tools/cloudcull-console/pkg/services/dashboard"
	"github.com/de-tools/cloudcull-console/pkg/services/metrics"
	"github.com/dustin/go-humanize"
)

type Renderer struct {
	Brand Brand
}

// Render draws snap with the text brand.
func Render(snap dashboard.Snapshot, now time.Time) Tree {
	return Renderer{}.Render(snap, now)
}

// Render is pure: the same snapshot and time always give the same tree.
func (r Renderer) Render(snap dashboard.Snapshot, now time.Time) Tree {
	switch {
	case snap.State == domain.StateFatal:
		return Tree{Kind: KindError, Error: &ErrorNode{Title: ErrorTitle, Message: snap.Err}}
	case !snap.State.HasData() || snap.Report == nil:
		return Tree{Kind: KindLoading, Loading: &Loading{Message: LoadingMessage}}
	}

	report := snap.Report
	brand := r.Brand
	if brand.Text == "" {
		brand.Text = BrandFallback
	}

	pct := metrics.WasteEfficiencyPercent(report)
	rows := make([]Row, 0, len(report.Instances))
	for _, inst := range report.Instances {
		rows = append(rows, renderRow(inst))
	}

	return Tree{
		Kind: KindDashboard,
		Dashboard: &Dashboard{
			Header: Header{Brand: brand, Status: StatusOnline},
			Summary: Summary{
				MonthlyRecovery: FormatSavings(report.Summary.TotalMonthlySavings),
				ZombieCount:     report.Summary.ZombieCount,
				CloudsScanned:   report.CloudsScanned(),
				LastScan:        report.Summary.Timestamp.Format(time.TimeOnly),
			},
			Gauge:     Gauge{Percent: pct, Label: fmt.Sprintf("%d%%", pct)},
			Topology:  Topology(report),
			Anomalies: rows,
			Logs: LogPanel{
				Synthetic: snap.Synthetic(),
				Lines:     renderLogs(snap.LogEntries(now)),
			},
		},
	}
}

func renderRow(inst domain.Instance) Row {
	waste := metrics.MonthlyWaste(inst)
	badge := Badge{Label: BadgeMonitor, Style: StyleSafe}
	if inst.Status.IsZombie() {
		badge = Badge{Label: BadgeTerminate, Style: StyleTerminate}
	}

	return Row{
		ID:           inst.ID,
		Type:         inst.Type,
		Owner:        "@" + inst.Owner,
		Platform:     inst.Platform,
		MonthlyWaste: FormatWaste(waste),
		WasteValue:   waste,
		Status:       string(inst.Status),
		Badge:        badge,
		Reasoning:    inst.Reasoning,
		IaCCommand:   inst.IaCCommand,
		CanCopy:      inst.IaCCommand != "",
	}
}

func renderLogs(entries []domain.LogEntry) []LogLine {
	lines := make([]LogLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, LogLine{Time: e.Time, Tag: e.Tag, Msg: e.Msg})
	}
	return lines
}

// FormatSavings renders a dollar amount with grouping and exactly two
// decimals: 1234.5 -> $1,234.50.
func FormatSavings(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatWaste renders a dollar amount with grouping and at most three
// decimals: 1080 -> $1,080, 86.4 -> $86.4.
func FormatWaste(v float64) string {
	return "$" + humanize.Commaf(math.Round(v*1000)/1000)
}
