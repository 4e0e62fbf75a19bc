package dashboard

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
)

const idPrefixLen = 8

// <YYYY-MM-DD HH:MM:SS,mmm> - [CloudCull] - <LEVEL> - <message>
var logLinePattern = regexp.MustCompile(`^(\S+ \S+) - \[CloudCull\] - (\S+) - (.*)$`)

// ParseLogBody turns a raw log body into entries, one per non-empty line.
// Lines that do not follow the backend format are kept as INFO entries
// without a time.
func ParseLogBody(body string) []domain.LogEntry {
	var entries []domain.LogEntry
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, ParseLogLine(line))
	}
	return entries
}

func ParseLogLine(line string) domain.LogEntry {
	m := logLinePattern.FindStringSubmatch(line)
	if m == nil {
		return domain.LogEntry{Time: domain.PlaceholderTime, Tag: domain.DefaultLogTag, Msg: line}
	}
	return domain.LogEntry{Time: timeOfDay(m[1]), Tag: m[2], Msg: m[3]}
}

// timeOfDay extracts HH:MM:SS from "YYYY-MM-DD HH:MM:SS,mmm".
func timeOfDay(ts string) string {
	_, clock, ok := strings.Cut(ts, " ")
	if !ok {
		return domain.PlaceholderTime
	}
	clock, _, _ = strings.Cut(clock, ",")
	clock, _, _ = strings.Cut(clock, ".")
	return clock
}

// FallbackEntries synthesizes a log for the given report. It returns nil
// when the report has no instances.
func FallbackEntries(report *domain.AuditReport, now time.Time) []domain.LogEntry {
	if report == nil || len(report.Instances) == 0 {
		return nil
	}
	ts := now.Format(time.TimeOnly)
	entries := make([]domain.LogEntry, 0, len(report.Instances)+2)
	entries = append(entries,
		domain.LogEntry{Time: ts, Tag: "SYSTEM", Msg: "engine initialized"},
		domain.LogEntry{Time: ts, Tag: "PROBE", Msg: "scanning clusters"},
	)
	for _, inst := range report.Instances {
		entries = append(entries, domain.LogEntry{
			Time: ts,
			Tag:  "SNIPER",
			Msg:  fmt.Sprintf("target %s classified as %s", idPrefix(inst.ID), inst.Status),
		})
	}
	return entries
}

func idPrefix(id string) string {
	if utf8.RuneCountInString(id) <= idPrefixLen {
		return id
	}
	return string([]rune(id)[:idPrefixLen])
}
