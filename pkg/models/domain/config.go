package domain

import "fmt"

// ConfigProfile is a named backend read from the profiles file.
type ConfigProfile struct {
	Name      string
	ReportURL string
	LogURL    string
	BasePath  string
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Name, c.ReportURL)
}
