package api

// AuditReport is the JSON document served by the report endpoint.
// Pointers distinguish a missing section from a zero value.
type AuditReport struct {
	Summary   *Summary   `json:"summary"`
	Instances []Instance `json:"instances"`
	Error     string     `json:"error,omitempty"`
}

type Summary struct {
	TotalMonthlySavings float64 `json:"total_monthly_savings"`
	ZombieCount         int     `json:"zombie_count"`
	Timestamp           string  `json:"timestamp"`
}

type Instance struct {
	Id         string          `json:"id"`
	Type       string          `json:"type"`
	Owner      string          `json:"owner"`
	Rate       float64         `json:"rate"`
	Status     string          `json:"status"`
	Platform   string          `json:"platform"`
	Metrics    InstanceMetrics `json:"metrics"`
	Reasoning  *string         `json:"reasoning,omitempty"`
	IaCCommand *string         `json:"iac_command,omitempty"`
}

type InstanceMetrics struct {
	MaxCPU    float64 `json:"max_cpu"`
	NetworkIn float64 `json:"network_in"`
}
