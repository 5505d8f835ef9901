package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Exposure       float64 `toml:"exposure"`
	InverseGamma   float64 `toml:"inverse_gamma"`
	ThumbnailWidth int     `toml:"width"`
	Filter         string  `toml:"filter"`
	Backend        string  `toml:"backend"`
	JPEGQuality    int     `toml:"jpeg_quality"`
	Overwrite      *bool   `toml:"overwrite"`
	LogLevel       string  `toml:"log_level"`
	WatchDebounce  string  `toml:"watch_debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.thumbshot/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".thumbshot", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setFloat(FlagExposure, fc.Exposure, &cfg.Exposure)
	s.setFloat(FlagInverseGamma, fc.InverseGamma, &cfg.InverseGamma)
	s.setInt(FlagWidth, fc.ThumbnailWidth, &cfg.ThumbnailWidth)
	s.setString(FlagFilter, fc.Filter, &cfg.Filter)
	s.setString(FlagBackend, fc.Backend, &cfg.Backend)
	s.setInt(FlagQuality, fc.JPEGQuality, &cfg.JPEGQuality)
	s.setBool(FlagOverwrite, fc.Overwrite, &cfg.Overwrite)
	s.setString(FlagLogLevel, fc.LogLevel, &cfg.LogLevel)

	return s.setDuration(FlagWatchDebounce, fc.WatchDebounce, &cfg.WatchDebounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
