package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/cloudcull-console/pkg/models/domain"
	"gopkg.in/ini.v1"
)

const profilesFileName = ".cloudcullcfg"

// Registry lists the named backends of the profiles file:
//
//	[staging]
//	report_url = https://staging.example.com/api/report
//	log_url    = https://staging.example.com/api/logs
//	base_path  = https://staging.example.com
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.ConfigProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func DefaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return profilesFileName
	}
	return filepath.Join(home, profilesFileName)
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.ConfigProfile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.ConfigProfile{}, fmt.Errorf("profile %s not found", name)
	}

	profile := domain.ConfigProfile{
		Name:      section.Name(),
		ReportURL: section.Key("report_url").String(),
		LogURL:    section.Key("log_url").String(),
		BasePath:  section.Key("base_path").String(),
	}
	if profile.ReportURL == "" {
		return domain.ConfigProfile{}, fmt.Errorf("profile %s: report_url is required", name)
	}
	return profile, nil
}
