package domain

const (
	PlaceholderTime = "--:--:--"
	DefaultLogTag   = "INFO"
)

// LogEntry is a single line of the console log, either parsed from the
// backend log stream or synthesized from the current report.
type LogEntry struct {
	Time string
	Tag  string
	Msg  string
}
