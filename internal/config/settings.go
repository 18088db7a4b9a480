package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Frequencies is the closed set of frequency names accepted in settings.
var Frequencies = []string{"year", "month", "date", "hour", "minute"}

// SupportedLanguages lists the UI languages shipped in the embedded locales.
var SupportedLanguages = []string{"en", "ko"}

// Settings is the persistent user configuration. Command line flags take
// precedence over every field.
type Settings struct {
	// Language selects the display locale (ISO 639-1).
	Language string `yaml:"language"`

	// Frequency is the default step unit when none is given.
	Frequency string `yaml:"frequency"`

	// Timezone is an IANA zone name used to interpret dates. Empty means
	// the host's local zone.
	Timezone string `yaml:"timezone,omitempty"`

	// Output is the default encoding for one-shot runs.
	Output string `yaml:"output"`

	// ListenPort is the port used by --serve.
	ListenPort string `yaml:"listen_port"`

	// Start and End pre-fill the range endpoints (YYYY-MM-DD). Empty means today.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() *Settings {
	return &Settings{
		Language:   DefaultLanguage,
		Frequency:  DefaultFrequency,
		Output:     DefaultOutput,
		ListenPort: DefaultPort,
	}
}

// Normalize replaces missing or unknown values with defaults so that a
// hand-edited file never leaves the application in a half-configured state.
func (s *Settings) Normalize() {
	if !slices.Contains(SupportedLanguages, s.Language) {
		s.Language = DefaultLanguage
	}
	if !slices.Contains(Frequencies, s.Frequency) {
		s.Frequency = DefaultFrequency
	}
	if !slices.Contains(SupportedOutputs, s.Output) {
		s.Output = DefaultOutput
	}
	if s.ListenPort == "" {
		s.ListenPort = DefaultPort
	}
}

// Location resolves Timezone. An empty zone is the host's local zone.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrInvalidTimezone, err)
	}
	return loc, nil
}

// DefaultSettingsPath returns <user config dir>/<AppID>/settings.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrCacheDir, err)
	}
	return filepath.Join(dir, AppID, SettingsFileName), nil
}

// LoadSettings reads the YAML settings at path.
//
// If the file does not exist, the defaults are written there and returned.
// A failed first-run write still returns the defaults together with the error
// so the caller can decide whether to carry on.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, errors.New(ErrSettingsPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s := DefaultSettings()
			if err := SaveSettings(path, s); err != nil {
				return s, err
			}
			slog.Info(MsgSettingsNew,
				LogKeyComponent, CompSettings,
				LogKeyPath, path,
			)
			return s, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	s.Normalize()
	return s, nil
}

// SaveSettings writes s to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func SaveSettings(path string, s *Settings) error {
	if path == "" {
		return errors.New(ErrSettingsPath)
	}
	s.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", ErrCreateDir, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	if err := os.Chmod(tmpName, FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%s: %w", ErrSettingsWrite, err)
	}
	return nil
}
