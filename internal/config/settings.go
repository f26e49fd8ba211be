package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"frota/internal/domain"
	"frota/internal/paths"
)

// Browser drivers
const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
)

// Settings represents the structure of ~/.frota/settings.json.
// Every field is optional; nil or empty means "use the flag default".
type Settings struct {
	BatchSize             *int   `json:"batch_size,omitempty"`
	Credentials           string `json:"credentials,omitempty"`
	Debug                 *bool  `json:"debug,omitempty"`
	DefaultTimeoutSeconds *int   `json:"default_timeout_seconds,omitempty"`
	Driver                string `json:"driver,omitempty"`
	Headless              *bool  `json:"headless,omitempty"`
	Login                 string `json:"login,omitempty"`
	MaxLogFiles           *int   `json:"max_log_files,omitempty"`
	PacingMs              *int   `json:"pacing_ms,omitempty"`
	PollMs                *int   `json:"poll_ms,omitempty"`
	Profile               string `json:"profile,omitempty"`
	ProgressEvery         *int   `json:"progress_every,omitempty"`
	ReportDir             string `json:"report_dir,omitempty"`
	SlowMoMs              *int   `json:"slow_mo_ms,omitempty"`
	StalePolicy           string `json:"stale_policy,omitempty"`
}

// Validate checks enumerated values and numeric ranges
func (s *Settings) Validate() error {
	if s.Driver != "" && s.Driver != DriverPlaywright && s.Driver != DriverRod {
		return fmt.Errorf("%w: unknown driver %q", domain.ErrConfiguration, s.Driver)
	}
	if s.Login != "" {
		if _, err := domain.ParseLoginMode(s.Login); err != nil {
			return err
		}
	}
	if s.StalePolicy != "" {
		if _, err := domain.ParseStalePolicy(s.StalePolicy); err != nil {
			return err
		}
	}
	positive := map[string]*int{
		"batch_size":              s.BatchSize,
		"default_timeout_seconds": s.DefaultTimeoutSeconds,
		"poll_ms":                 s.PollMs,
		"progress_every":          s.ProgressEvery,
	}
	for name, v := range positive {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", domain.ErrConfiguration, name, *v)
		}
	}
	if s.PacingMs != nil && *s.PacingMs < 0 {
		return fmt.Errorf("%w: pacing_ms cannot be negative", domain.ErrConfiguration)
	}
	return nil
}

// LoadSettings loads settings from $FROTA_HOME/settings.json (or ~/.frota/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(paths.GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%w: invalid settings.json: %v", domain.ErrConfiguration, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings.json: %w", err)
	}

	// Expand paths if they start with ~
	settings.Credentials = paths.ExpandPath(settings.Credentials)
	settings.Profile = paths.ExpandPath(settings.Profile)
	settings.ReportDir = paths.ExpandPath(settings.ReportDir)

	return &settings, nil
}

// SaveSettings saves settings to path, creating its directory
func SaveSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
