package view

import (
	"fmt"
	"strings"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
)

// Topology renders the report as a Mermaid flowchart: the console fans out
// to one node per platform, each platform to its instances. Zombies carry
// the zombie class.
func Topology(report *domain.AuditReport) string {
	var b strings.Builder
	b.WriteString("graph LR\n")
	b.WriteString("  cc((CloudCull))\n")
	if report == nil {
		return b.String()
	}

	platformNode := make(map[string]string)
	for i, p := range report.Platforms() {
		id := fmt.Sprintf("p%d", i)
		platformNode[p] = id
		fmt.Fprintf(&b, "  cc --> %s[%s]\n", id, mermaidLabel(platformLabel(p)))
	}

	var zombies []string
	for i, inst := range report.Instances {
		id := fmt.Sprintf("n%d", i)
		fmt.Fprintf(&b, "  %s --> %s[%s]\n", platformNode[inst.Platform], id, mermaidLabel(inst.ID))
		if inst.Status.IsZombie() {
			zombies = append(zombies, id)
		}
	}

	if len(zombies) > 0 {
		b.WriteString("  classDef zombie fill:#3b0d0d,stroke:#ff4d4d,color:#ff4d4d\n")
		fmt.Fprintf(&b, "  class %s zombie\n", strings.Join(zombies, ","))
	}
	return b.String()
}

func platformLabel(p string) string {
	if p == "" {
		return "UNKNOWN"
	}
	return p
}

func mermaidLabel(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "#quot;") + `"`
}
