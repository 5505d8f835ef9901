// Package config assembles thumbshot settings from defaults, a TOML file,
// a .env file, THUMBSHOT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/thumbshot/internal/gamma"
	"github.com/ironsheep/thumbshot/internal/imaging"
	"github.com/ironsheep/thumbshot/internal/logging"
	"github.com/ironsheep/thumbshot/internal/tonemap"
)

// Flag names shared by the CLI, the TOML keys' precedence checks and the
// environment overrides.
const (
	FlagExposure      = "exposure"
	FlagInverseGamma  = "inverse-gamma"
	FlagWidth         = "width"
	FlagFilter        = "filter"
	FlagBackend       = "backend"
	FlagQuality       = "quality"
	FlagOverwrite     = "overwrite"
	FlagLogLevel      = "log-level"
	FlagWatchDebounce = "debounce"
)

// DefaultThumbnailWidth is the thumbnail width used when none is configured.
const DefaultThumbnailWidth = 350

// Config holds thumbshot settings.
type Config struct {
	Exposure       float64
	InverseGamma   float64
	ThumbnailWidth int
	Filter         string
	Backend        string
	JPEGQuality    int
	Overwrite      bool
	LogLevel       string
	WatchDebounce  time.Duration
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Exposure:       tonemap.DefaultExposure,
		InverseGamma:   gamma.SRGBInverse,
		ThumbnailWidth: DefaultThumbnailWidth,
		Filter:         imaging.FilterLanczos,
		Backend:        imaging.BackendImaging,
		JPEGQuality:    imaging.DefaultJPEGQuality,
		LogLevel:       "info",
		WatchDebounce:  250 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and normalises names.
func (c *Config) Validate() error {
	if !(c.Exposure > 0) || math.IsInf(c.Exposure, 0) {
		return fmt.Errorf("exposure must be a finite positive number, got %v", c.Exposure)
	}
	if !(c.InverseGamma > 0) || math.IsInf(c.InverseGamma, 0) {
		return fmt.Errorf("inverse gamma must be a finite positive number, got %v", c.InverseGamma)
	}
	if c.ThumbnailWidth <= 0 {
		return fmt.Errorf("width must be positive, got %d", c.ThumbnailWidth)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.WatchDebounce)
	}

	c.Filter = strings.ToLower(strings.TrimSpace(c.Filter))
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if _, err := imaging.NewResizer(c.Backend, c.Filter); err != nil {
		return err
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// ToneMap returns the tone-mapping settings.
func (c Config) ToneMap() tonemap.Config {
	return tonemap.Config{Exposure: c.Exposure}
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if set (non-zero) and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if set (non-zero) and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination. Range
// checks are left to Config.Validate.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	v := strings.ToLower(value)
	*dst = v == "true" || v == "1"
}
