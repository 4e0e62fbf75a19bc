package adapters

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/cloudcull-console/pkg/models/api"
	"github.com/de-tools/cloudcull-console/pkg/models/domain"
)

const timestampNoZone = "2006-01-02T15:04:05.999999999"

// DecodeAuditReport decodes and validates a report document read from source.
// Every failure is a *domain.ParseError.
func DecodeAuditReport(source string, data []byte) (*domain.AuditReport, error) {
	var doc api.AuditReport
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ParseError{Source: source, Err: err}
	}
	report, err := MapAuditReportApiToDomain(doc)
	if err != nil {
		return nil, &domain.ParseError{Source: source, Err: err}
	}
	return report, nil
}

func MapAuditReportApiToDomain(r api.AuditReport) (*domain.AuditReport, error) {
	if r.Error != "" {
		return nil, errors.New(r.Error)
	}
	if r.Summary == nil {
		return nil, errors.New("missing summary")
	}
	if r.Instances == nil {
		return nil, errors.New("missing instances")
	}

	summary, err := mapSummaryApiToDomain(*r.Summary)
	if err != nil {
		return nil, err
	}

	res := &domain.AuditReport{
		Summary:   summary,
		Instances: make([]domain.Instance, 0, len(r.Instances)),
	}
	seen := make(map[string]struct{}, len(r.Instances))
	for i, inst := range r.Instances {
		if inst.Id == "" {
			return nil, fmt.Errorf("instance %d: empty id", i)
		}
		if _, ok := seen[inst.Id]; ok {
			return nil, fmt.Errorf("instance %d: duplicate id %q", i, inst.Id)
		}
		seen[inst.Id] = struct{}{}

		mapped, err := mapInstanceApiToDomain(inst)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", inst.Id, err)
		}
		res.Instances = append(res.Instances, mapped)
	}
	return res, nil
}

func mapSummaryApiToDomain(s api.Summary) (domain.Summary, error) {
	if s.TotalMonthlySavings < 0 {
		return domain.Summary{}, fmt.Errorf("negative total_monthly_savings %v", s.TotalMonthlySavings)
	}
	if s.ZombieCount < 0 {
		return domain.Summary{}, fmt.Errorf("negative zombie_count %d", s.ZombieCount)
	}
	ts, err := parseTimestamp(s.Timestamp)
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{
		TotalMonthlySavings: s.TotalMonthlySavings,
		ZombieCount:         s.ZombieCount,
		Timestamp:           ts,
	}, nil
}

func mapInstanceApiToDomain(i api.Instance) (domain.Instance, error) {
	if i.Rate < 0 {
		return domain.Instance{}, fmt.Errorf("negative rate %v", i.Rate)
	}
	if i.Metrics.MaxCPU < 0 || i.Metrics.MaxCPU > 100 {
		return domain.Instance{}, fmt.Errorf("max_cpu %v out of range", i.Metrics.MaxCPU)
	}
	if i.Metrics.NetworkIn < 0 {
		return domain.Instance{}, fmt.Errorf("negative network_in %v", i.Metrics.NetworkIn)
	}
	return domain.Instance{
		ID:       i.Id,
		Type:     i.Type,
		Owner:    i.Owner,
		Rate:     i.Rate,
		Status:   domain.Status(i.Status),
		Platform: i.Platform,
		Metrics: domain.InstanceMetrics{
			MaxCPU:    i.Metrics.MaxCPU,
			NetworkIn: i.Metrics.NetworkIn,
		},
		Reasoning:  deref(i.Reasoning),
		IaCCommand: deref(i.IaCCommand),
	}, nil
}

func MapAuditReportDomainToApi(r domain.AuditReport) api.AuditReport {
	res := api.AuditReport{
		Summary: &api.Summary{
			TotalMonthlySavings: r.Summary.TotalMonthlySavings,
			ZombieCount:         r.Summary.ZombieCount,
			Timestamp:           r.Summary.Timestamp.Format(time.RFC3339Nano),
		},
		Instances: make([]api.Instance, 0, len(r.Instances)),
	}
	for _, inst := range r.Instances {
		res.Instances = append(res.Instances, api.Instance{
			Id:       inst.ID,
			Type:     inst.Type,
			Owner:    inst.Owner,
			Rate:     inst.Rate,
			Status:   string(inst.Status),
			Platform: inst.Platform,
			Metrics: api.InstanceMetrics{
				MaxCPU:    inst.Metrics.MaxCPU,
				NetworkIn: inst.Metrics.NetworkIn,
			},
			Reasoning:  optional(inst.Reasoning),
			IaCCommand: optional(inst.IaCCommand),
		})
	}
	return res
}

func MapLogEntriesDomainToApi(entries []domain.LogEntry) []api.LogEntry {
	res := make([]api.LogEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, api.LogEntry{Time: e.Time, Tag: e.Tag, Msg: e.Msg})
	}
	return res
}

// parseTimestamp accepts RFC 3339 and the zone-less ISO form, read as UTC.
func parseTimestamp(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("missing timestamp")
	}
	if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(timestampNoZone, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
	}
	return ts.UTC(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
