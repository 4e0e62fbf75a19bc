package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuditReport_CloudsScanned(t *testing.T) {
	tests := []struct {
		name      string
		platforms []string
		expected  int
	}{
		{name: "empty report", platforms: nil, expected: 0},
		{name: "distinct platforms", platforms: []string{"AWS", "GCP", "AWS"}, expected: 2},
		{name: "missing platform not counted", platforms: []string{"", "AWS"}, expected: 1},
		{name: "only missing platforms", platforms: []string{"", ""}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &AuditReport{}
			for _, p := range tt.platforms {
				report.Instances = append(report.Instances, Instance{Platform: p})
			}

			assert.Equal(t, tt.expected, report.CloudsScanned())
		})
	}
}
