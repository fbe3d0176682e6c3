// Package config loads runpad settings from an optional .env file and the
// RUNPAD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"runpad/internal/editor"
	"runpad/internal/lang"
	"runpad/internal/runner"
)

// AppConfig is the resolved configuration for one process.
type AppConfig struct {
	Runner    runner.Config
	Toolchain lang.Toolchain

	LogLevel    string
	MetricsFile string

	AutosaveFile     string
	AutosaveInterval time.Duration
}

// Load reads envFile when it exists and then the environment. A missing
// envFile is not an error; a malformed one is.
func Load(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv builds the configuration from the current environment.
func FromEnv() *AppConfig {
	def := runner.DefaultConfig()
	return &AppConfig{
		Runner: runner.Config{
			WorkDir:        envOrDefault("RUNPAD_WORKDIR", def.WorkDir),
			Isolate:        parseBool(os.Getenv("RUNPAD_ISOLATE"), def.Isolate),
			RunTimeout:     parseDuration(os.Getenv("RUNPAD_RUN_TIMEOUT"), def.RunTimeout),
			CompileTimeout: parseDuration(os.Getenv("RUNPAD_COMPILE_TIMEOUT"), 0),
		},
		Toolchain: lang.Toolchain{
			Python: os.Getenv("RUNPAD_PYTHON"),
			CC:     os.Getenv("RUNPAD_CC"),
			CXX:    os.Getenv("RUNPAD_CXX"),
			Javac:  os.Getenv("RUNPAD_JAVAC"),
			Java:   os.Getenv("RUNPAD_JAVA"),
		},
		LogLevel:         envOrDefault("RUNPAD_LOG_LEVEL", "warn"),
		MetricsFile:      os.Getenv("RUNPAD_METRICS_FILE"),
		AutosaveFile:     envOrDefault("RUNPAD_AUTOSAVE_FILE", "autosave.txt"),
		AutosaveInterval: parseDuration(os.Getenv("RUNPAD_AUTOSAVE_INTERVAL"), editor.DefaultAutosaveInterval),
	}
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// parseDuration accepts Go durations ("1500ms") and plain seconds ("10").
func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

func parseBool(raw string, fallback bool) bool {
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}
