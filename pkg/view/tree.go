package view

type Kind string

const (
	KindLoading   Kind = "loading"
	KindError     Kind = "error"
	KindDashboard Kind = "dashboard"
)

type BadgeStyle string

const (
	StyleTerminate BadgeStyle = "terminate"
	StyleSafe      BadgeStyle = "safe"
)

const (
	LoadingMessage = "INITIALIZING CLOUDCULL PROTOCOL..."
	ErrorTitle     = "NO AUDIT DATA DETECTED. EXECUTE SCAN."
	StatusOnline   = "SYSTEM ONLINE"
	AnomaliesTitle = "DETECTED ANOMALIES"
	BrandFallback  = "CLOUDCULL"

	BadgeTerminate = "TERMINATE"
	BadgeMonitor   = "MONITOR"
)

// Tree is the presentation of one snapshot. Exactly one of Loading, Error
// and Dashboard is set, matching Kind.
type Tree struct {
	Kind      Kind       `json:"kind"`
	Loading   *Loading   `json:"loading,omitempty"`
	Error     *ErrorNode `json:"error,omitempty"`
	Dashboard *Dashboard `json:"dashboard,omitempty"`
}

type Loading struct {
	Message string `json:"message"`
}

type ErrorNode struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Dashboard struct {
	Header    Header   `json:"header"`
	Summary   Summary  `json:"summary"`
	Gauge     Gauge    `json:"gauge"`
	Topology  string   `json:"topology"`
	Anomalies []Row    `json:"anomalies"`
	Logs      LogPanel `json:"logs"`
}

type Header struct {
	Brand  Brand  `json:"brand"`
	Status string `json:"status"`
}

// Brand is the header logo. When ImageURL is empty the header shows Text.
type Brand struct {
	ImageURL string `json:"image_url,omitempty"`
	Text     string `json:"text"`
}

type Summary struct {
	MonthlyRecovery string `json:"monthly_recovery"`
	ZombieCount     int    `json:"zombie_count"`
	CloudsScanned   int    `json:"clouds_scanned"`
	LastScan        string `json:"last_scan"`
}

type Gauge struct {
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

type Row struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Owner        string  `json:"owner"`
	Platform     string  `json:"platform"`
	MonthlyWaste string  `json:"monthly_waste"`
	WasteValue   float64 `json:"waste_value"`
	Status       string  `json:"status"`
	Badge        Badge   `json:"badge"`
	Reasoning    string  `json:"reasoning,omitempty"`
	IaCCommand   string  `json:"iac_command,omitempty"`
	CanCopy      bool    `json:"can_copy"`
}

type Badge struct {
	Label string     `json:"label"`
	Style BadgeStyle `json:"style"`
}

type LogPanel struct {
	Synthetic bool      `json:"synthetic"`
	Lines     []LogLine `json:"lines"`
}

type LogLine struct {
	Time string `json:"time"`
	Tag  string `json:"tag"`
	Msg  string `json:"msg"`
}
