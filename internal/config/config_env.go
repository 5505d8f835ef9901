package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFileVar names an explicit .env file to load.
const EnvFileVar = "THUMBSHOT_ENV_FILE"

// ResolveEnvFile returns the .env file to load: the path in
// THUMBSHOT_ENV_FILE if set, else a .env next to the executable, else "".
func ResolveEnvFile() string {
	if alt := os.Getenv(EnvFileVar); alt != "" {
		return alt
	}

	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	exeEnv := filepath.Join(filepath.Dir(execPath), ".env")
	if FileExists(exeEnv) {
		return exeEnv
	}
	return ""
}

// LoadEnvFile loads path into the process environment. Variables that are
// already set keep their values. An empty path is a no-op.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvConfig applies THUMBSHOT_* environment variables to cfg.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setFloatFromString(FlagExposure, os.Getenv("THUMBSHOT_EXPOSURE"), &cfg.Exposure); err != nil {
		return err
	}
	if err := s.setFloatFromString(FlagInverseGamma, os.Getenv("THUMBSHOT_INVERSE_GAMMA"), &cfg.InverseGamma); err != nil {
		return err
	}
	if err := s.setIntFromString(FlagWidth, os.Getenv("THUMBSHOT_WIDTH"), &cfg.ThumbnailWidth); err != nil {
		return err
	}
	if err := s.setIntFromString(FlagQuality, os.Getenv("THUMBSHOT_JPEG_QUALITY"), &cfg.JPEGQuality); err != nil {
		return err
	}
	if err := s.setDuration(FlagWatchDebounce, os.Getenv("THUMBSHOT_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setString(FlagFilter, os.Getenv("THUMBSHOT_FILTER"), &cfg.Filter)
	s.setString(FlagBackend, os.Getenv("THUMBSHOT_BACKEND"), &cfg.Backend)
	s.setString(FlagLogLevel, os.Getenv("THUMBSHOT_LOG_LEVEL"), &cfg.LogLevel)
	s.setBoolFromString(FlagOverwrite, os.Getenv("THUMBSHOT_OVERWRITE"), &cfg.Overwrite)

	return nil
}

// Load applies, in order, the TOML file at path (when it exists), the .env
// file from ResolveEnvFile and THUMBSHOT_* variables to cfg, then validates
// it. Flags listed in changed keep their values. An empty path selects
// DefaultConfigPath.
func Load(cfg *Config, path string, changed map[string]bool) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" && (explicit || FileExists(path)) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := LoadEnvFile(ResolveEnvFile()); err != nil {
		return err
	}
	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	return cfg.Validate()
}
