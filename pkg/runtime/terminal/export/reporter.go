package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/cloudcull-console/pkg/view"
)

type TableConfig struct {
	IDWidth    int
	TypeWidth  int
	OwnerWidth int
	WasteWidth int
	BadgeWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:    24,
		TypeWidth:  16,
		OwnerWidth: 14,
		WasteWidth: 12,
		BadgeWidth: 9,
	}
}

// Reporter writes a rendered view tree as a plain text dashboard or as JSON.
type Reporter struct {
	writer io.Writer
	config TableConfig
	tmpl   *template.Template
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	c := &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
	c.tmpl = template.Must(template.New("dashboard").Funcs(c.funcMap()).Parse(dashboardTemplate))
	return c
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"anomaliesTitle": func() string { return view.AnomaliesTitle },
		"formatRow": func(id, typ, owner, waste, badge string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %*s | %-*s |",
				c.config.IDWidth, clip(id, c.config.IDWidth),
				c.config.TypeWidth, clip(typ, c.config.TypeWidth),
				c.config.OwnerWidth, clip(owner, c.config.OwnerWidth),
				c.config.WasteWidth, waste,
				c.config.BadgeWidth, badge)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.IDWidth+2),
				strings.Repeat("-", c.config.TypeWidth+2),
				strings.Repeat("-", c.config.OwnerWidth+2),
				strings.Repeat("-", c.config.WasteWidth+2),
				strings.Repeat("-", c.config.BadgeWidth+2))
		},
	}
}

const dashboardTemplate = `{{if .Error}}{{.Error.Title}}
{{.Error.Message}}
{{else if .Loading}}{{.Loading.Message}}
{{else}}{{with .Dashboard}}{{.Header.Brand.Text}} :: {{.Header.Status}}

Potential Monthly Recovery: {{.Summary.MonthlyRecovery}}
Zombie Nodes: {{.Summary.ZombieCount}}
Clouds Scanned: {{.Summary.CloudsScanned}}
Last Scan: {{.Summary.LastScan}}
Waste Efficiency: {{.Gauge.Label}}

=== {{anomaliesTitle}} ===
{{separator}}
{{formatRow "ID" "TYPE" "OWNER" "WASTE / MO" "ACTION"}}
{{separator}}
{{range .Anomalies}}{{formatRow .ID .Type .Owner .MonthlyWaste .Badge.Label}}
{{end}}{{separator}}
{{range .Anomalies}}{{if .Reasoning}}
{{.ID}}: {{.Reasoning}}{{if .CanCopy}}
  fix: {{.IaCCommand}}{{end}}
{{end}}{{end}}
=== LOGS{{if .Logs.Synthetic}} (synthetic){{end}} ===
{{range .Logs.Lines}}{{.Time}} [{{.Tag}}] {{.Msg}}
{{end}}{{end}}{{end}}`

// Handle writes the text dashboard for tree.
func (c *Reporter) Handle(tree view.Tree) error {
	if err := c.tmpl.Execute(c.writer, tree); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}

// HandleJSON writes tree as indented JSON.
func (c *Reporter) HandleJSON(tree view.Tree) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
