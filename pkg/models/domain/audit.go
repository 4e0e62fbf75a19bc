package domain

import "time"

type Status string

const (
	StatusZombie Status = "ZOMBIE"
	StatusActive Status = "ACTIVE"
)

func (s Status) IsZombie() bool {
	return s == StatusZombie
}

// AuditReport is produced by the backend and replaced wholesale on every
// successful poll. It must not be mutated after it has been handed to the
// coordinator.
type AuditReport struct {
	Summary   Summary
	Instances []Instance
}

type Summary struct {
	TotalMonthlySavings float64
	ZombieCount         int
	Timestamp           time.Time
}

type Instance struct {
	ID         string // unique within a report, used as render key
	Type       string // p4d.24xlarge
	Owner      string
	Rate       float64 // hourly cost, USD
	Status     Status
	Platform   string // AWS, GCP, AZURE
	Metrics    InstanceMetrics
	Reasoning  string
	IaCCommand string
}

type InstanceMetrics struct {
	MaxCPU    float64 // 0-100
	NetworkIn float64
}

// Platforms returns the distinct platforms of the report in first-seen order.
func (r *AuditReport) Platforms() []string {
	seen := make(map[string]struct{}, len(r.Instances))
	var platforms []string
	for _, inst := range r.Instances {
		if _, ok := seen[inst.Platform]; ok {
			continue
		}
		seen[inst.Platform] = struct{}{}
		platforms = append(platforms, inst.Platform)
	}
	return platforms
}

// CloudsScanned counts the distinct named platforms. Instances without a
// platform are not a cloud of their own.
func (r *AuditReport) CloudsScanned() int {
	n := 0
	for _, p := range r.Platforms() {
		if p != "" {
			n++
		}
	}
	return n
}
