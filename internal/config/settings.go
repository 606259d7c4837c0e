package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/lumina-ai/lumina-console/internal/domain"
)

// Defaults applied when neither flags, environment nor settings provide a value
const (
	DefaultBaseURL              = "http://localhost:8080/api/v1"
	DefaultMaxNotifications     = 5
	DefaultNotificationDuration = 3 * time.Second
	DefaultRequestTimeout       = 10 * time.Second
	DefaultRetries              = 2
)

// Settings represents the structure of $LUMINA_HOME/settings.json.
// Pointer fields distinguish "not set" from a zero value.
type Settings struct {
	AutoRefresh            *bool  `json:"auto_refresh,omitempty" mapstructure:"auto_refresh"`
	BaseURL                string `json:"base_url,omitempty" mapstructure:"base_url"`
	Debug                  *bool  `json:"debug,omitempty" mapstructure:"debug"`
	MaxLogFiles            *int   `json:"max_log_files,omitempty" mapstructure:"max_log_files"`
	MaxNotifications       *int   `json:"max_notifications,omitempty" mapstructure:"max_notifications"`
	MetricsAddr            string `json:"metrics_addr,omitempty" mapstructure:"metrics_addr"`
	NotificationDurationMs *int   `json:"notification_duration_ms,omitempty" mapstructure:"notification_duration_ms"`
	PageSize               *int   `json:"page_size,omitempty" mapstructure:"page_size"`
	RefreshIntervalSeconds *int   `json:"refresh_interval_seconds,omitempty" mapstructure:"refresh_interval_seconds"`
	RequestTimeoutSeconds  *int   `json:"request_timeout_seconds,omitempty" mapstructure:"request_timeout_seconds"`
	Retries                *int   `json:"retries,omitempty" mapstructure:"retries"`
}

// LoadSettings reads the settings file from $LUMINA_HOME.
// A missing file yields empty Settings, not an error.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom reads and validates the settings file at path
func LoadSettingsFrom(path string) (*Settings, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return &settings, nil
}

// Validate rejects values the console cannot represent
func (s *Settings) Validate() error {
	var errs []error

	if s.PageSize != nil && !domain.ValidPageSize(*s.PageSize) {
		errs = append(errs, fmt.Errorf("page_size must be one of %v, got %d", domain.PageSizes, *s.PageSize))
	}
	if s.RefreshIntervalSeconds != nil && !domain.ValidRefreshInterval(time.Duration(*s.RefreshIntervalSeconds)*time.Second) {
		errs = append(errs, fmt.Errorf("refresh_interval_seconds must be one of 5, 10, 30, 60, got %d", *s.RefreshIntervalSeconds))
	}
	if s.RequestTimeoutSeconds != nil && *s.RequestTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("request_timeout_seconds must be positive"))
	}
	if s.Retries != nil && *s.Retries < 0 {
		errs = append(errs, errors.New("retries must not be negative"))
	}
	if s.NotificationDurationMs != nil && *s.NotificationDurationMs <= 0 {
		errs = append(errs, errors.New("notification_duration_ms must be positive"))
	}
	if s.MaxNotifications != nil && *s.MaxNotifications <= 0 {
		errs = append(errs, errors.New("max_notifications must be positive"))
	}
	if s.MaxLogFiles != nil && *s.MaxLogFiles < 0 {
		errs = append(errs, errors.New("max_log_files must not be negative"))
	}

	return errors.Join(errs...)
}
