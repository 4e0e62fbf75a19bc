package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/de-tools/cloudcull-console/pkg/view"
)

var (
	accent  = lipgloss.Color("#00E5FF")
	zombie  = lipgloss.Color("#FF4D4D")
	safe    = lipgloss.Color("#39FF88")
	muted   = lipgloss.Color("#6C7A89")
	surface = lipgloss.Color("#1B2430")

	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	statusStyle = lipgloss.NewStyle().
			Foreground(safe)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted)

	heroStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	zombieCountStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(zombie)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	terminateBadge = lipgloss.NewStyle().
			Bold(true).
			Foreground(zombie)

	safeBadge = lipgloss.NewStyle().
			Foreground(safe)

	selectedStyle = lipgloss.NewStyle().
			Background(surface)

	copiedStyle = lipgloss.NewStyle().
			Foreground(safe)

	errorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(zombie).
			Padding(1, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted)

	helpStyle = lipgloss.NewStyle().
			Foreground(muted)
)

const (
	gaugeWidth = 30

	colID    = 24
	colType  = 16
	colOwner = 14
	colWaste = 12
)

func renderHeader(h view.Header) string {
	brand := brandStyle.Render(h.Brand.Text)
	status := statusStyle.Render("● " + h.Status)
	return brand + "   " + status
}

func renderSummary(s view.Summary) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("POTENTIAL MONTHLY RECOVERY"))
	b.WriteString("\n")
	b.WriteString(heroStyle.Render(s.MonthlyRecovery))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s   %s %d   %s %s",
		labelStyle.Render("ZOMBIE NODES"), zombieCountStyle.Render(fmt.Sprint(s.ZombieCount)),
		labelStyle.Render("CLOUDS SCANNED"), s.CloudsScanned,
		labelStyle.Render("LAST SCAN"), s.LastScan)
	return b.String()
}

func renderGauge(g view.Gauge) string {
	filled := g.Percent * gaugeWidth / 100
	bar := terminateBadge.Render(strings.Repeat("█", filled)) +
		labelStyle.Render(strings.Repeat("░", gaugeWidth-filled))
	return labelStyle.Render("WASTE EFFICIENCY ") + bar + " " + g.Label
}

func renderAnomalies(rows []view.Row, selected int, copiedID string) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(view.AnomaliesTitle))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %-*s %s",
		colID, "INFRASTRUCTURE ID", colType, "TYPE", colOwner, "OWNER", colWaste, "WASTE / MO", "ACTION")))
	b.WriteString("\n")

	for i, row := range rows {
		cursor := "  "
		if i == selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-*s %-*s %-*s %-*s ",
			cursor,
			colID, truncate(row.ID, colID),
			colType, truncate(row.Type, colType),
			colOwner, truncate(row.Owner, colOwner),
			colWaste, row.MonthlyWaste)
		line += renderBadge(row.Badge)
		if i == selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if selected >= 0 && selected < len(rows) {
		b.WriteString(renderDetail(rows[selected], copiedID))
	}
	return b.String()
}

func renderBadge(badge view.Badge) string {
	if badge.Style == view.StyleTerminate {
		return terminateBadge.Render(badge.Label)
	}
	return safeBadge.Render(badge.Label)
}

func renderDetail(row view.Row, copiedID string) string {
	var b strings.Builder
	if row.Reasoning != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("REASONING "))
		b.WriteString(row.Reasoning)
		b.WriteString("\n")
	}
	if row.CanCopy {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("FIX "))
		b.WriteString(row.IaCCommand)
		if copiedID == row.ID {
			b.WriteString("  " + copiedStyle.Render("✓ copied"))
		} else {
			b.WriteString("  " + helpStyle.Render("[c] copy"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderLogLines(lines []view.LogLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s", labelStyle.Render(l.Time), tagStyle(l.Tag).Render(fmt.Sprintf("%-7s", l.Tag)), l.Msg)
	}
	return b.String()
}

func tagStyle(tag string) lipgloss.Style {
	switch tag {
	case "ERROR", "CRITICAL", "SNIPER":
		return terminateBadge
	case "WARNING", "WARN":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB020"))
	default:
		return brandStyle
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
