package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/de-tools/cloudcull-console/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardTree() view.Tree {
	return view.Tree{
		Kind: view.KindDashboard,
		Dashboard: &view.Dashboard{
			Header:  view.Header{Brand: view.Brand{Text: view.BrandFallback}, Status: view.StatusOnline},
			Summary: view.Summary{MonthlyRecovery: "$1,234.50", ZombieCount: 2, CloudsScanned: 2, LastScan: "12:00:00"},
			Gauge:   view.Gauge{Percent: 100, Label: "100%"},
			Anomalies: []view.Row{
				{
					ID: "i-0123456789abcdef0", Type: "p4d.24xlarge", Owner: "@ml", MonthlyWaste: "$1,080",
					Badge: view.Badge{Label: view.BadgeTerminate, Style: view.StyleTerminate},
					Reasoning: "idle GPU", IaCCommand: "terraform destroy", CanCopy: true,
				},
			},
			Logs: view.LogPanel{
				Synthetic: true,
				Lines:     []view.LogLine{{Time: "10:00:00", Tag: "SYSTEM", Msg: "engine initialized"}},
			},
		},
	}
}

func TestReporter_Handle(t *testing.T) {
	tests := []struct {
		name     string
		tree     view.Tree
		contains []string
		absent   []string
	}{
		{
			name:     "loading",
			tree:     view.Tree{Kind: view.KindLoading, Loading: &view.Loading{Message: view.LoadingMessage}},
			contains: []string{view.LoadingMessage},
			absent:   []string{"$"},
		},
		{
			name:     "error",
			tree:     view.Tree{Kind: view.KindError, Error: &view.ErrorNode{Title: view.ErrorTitle, Message: "connection refused"}},
			contains: []string{view.ErrorTitle, "connection refused"},
			absent:   []string{view.LoadingMessage},
		},
		{
			name: "dashboard",
			tree: dashboardTree(),
			contains: []string{
				"CLOUDCULL :: SYSTEM ONLINE",
				"Potential Monthly Recovery: $1,234.50",
				"Waste Efficiency: 100%",
				view.AnomaliesTitle,
				"i-0123456789abcdef0",
				"$1,080",
				view.BadgeTerminate,
				"fix: terraform destroy",
				"LOGS (synthetic)",
				"10:00:00 [SYSTEM] engine initialized",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewReporter(&buf).Handle(tt.tree))

			out := buf.String()
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestReporter_ClipsLongColumns(t *testing.T) {
	tree := dashboardTree()
	tree.Dashboard.Anomalies[0].ID = "i-this-identifier-is-far-too-long-for-the-column"

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).Handle(tree))

	assert.Contains(t, buf.String(), "| i-this-identifier-is-far |")
}

func TestReporter_HandleJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf).HandleJSON(dashboardTree()))

	var decoded view.Tree
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, view.KindDashboard, decoded.Kind)
	require.NotNil(t, decoded.Dashboard)
	assert.Equal(t, "$1,234.50", decoded.Dashboard.Summary.MonthlyRecovery)
}
