package api

type LogEntry struct {
	Time string `json:"time"`
	Tag  string `json:"tag"`
	Msg  string `json:"msg"`
}

type LogsResponse struct {
	Synthetic bool       `json:"synthetic"`
	Entries   []LogEntry `json:"entries"`
}

type Health struct {
	State     string `json:"state"`
	UpdatedAt string `json:"updated_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
