// Package config persists user-facing application settings as a TOML
// file under the XDG config directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/altiumtools/rulegen/pkg/errors"
	"github.com/altiumtools/rulegen/pkg/logging"
	"github.com/altiumtools/rulegen/pkg/units"
)

var log = logging.GetLogger("config")

// Settings holds the persisted application preferences
type Settings struct {
	// DefaultUnit is assumed when imported data carries no unit
	DefaultUnit string `toml:"default_unit"`

	// RuleNamePrefix is prepended to generated clearance rule names
	RuleNamePrefix string `toml:"rule_name_prefix"`

	RecentFiles    []string `toml:"recent_files"`
	MaxRecentFiles int      `toml:"max_recent_files"`
	LastDirectory  string   `toml:"last_directory"`
}

// Defaults returns the settings used when no config file exists
func Defaults() Settings {
	return Settings{
		DefaultUnit:    string(units.Mil),
		RuleNamePrefix: "Clearance_",
		MaxRecentFiles: 5,
	}
}

// DefaultPath returns the standard settings file location
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "rulegen", "settings.toml")
}

// Load reads settings from path, merging over defaults. A missing file
// is not an error; defaults are returned.
func Load(path string) (Settings, error) {
	settings := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No settings file, using defaults")
			return settings, nil
		}
		return settings, errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to read settings from %s", path)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return Defaults(), errors.Wrapf(err, errors.ErrConfigLoad,
			"failed to parse settings from %s", path)
	}

	// Guard against hand-edited nonsense
	if settings.MaxRecentFiles < 1 {
		settings.MaxRecentFiles = Defaults().MaxRecentFiles
	}
	if _, err := units.Parse(settings.DefaultUnit); err != nil {
		log.Warn().Str("unit", settings.DefaultUnit).Msg("Invalid default_unit in settings, using mil")
		settings.DefaultUnit = string(units.Mil)
	}

	log.Debug().Str("path", path).Msg("Loaded settings")
	return settings, nil
}

// Save writes settings to path, creating parent directories as needed
func Save(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave,
			"failed to create settings directory for %s", path)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "failed to encode settings")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave,
			"failed to write settings to %s", path)
	}

	log.Debug().Str("path", path).Msg("Saved settings")
	return nil
}

// AddRecentFile pushes path to the front of the recent-files list,
// dropping duplicates and trimming to MaxRecentFiles
func (s *Settings) AddRecentFile(path string) {
	recent := []string{path}
	for _, p := range s.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > s.MaxRecentFiles {
		recent = recent[:s.MaxRecentFiles]
	}
	s.RecentFiles = recent
}

// Unit returns the parsed default unit
func (s *Settings) Unit() units.Unit {
	u, err := units.Parse(s.DefaultUnit)
	if err != nil {
		return units.Mil
	}
	return u
}
