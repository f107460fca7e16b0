package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIBaseURL        = "API_BASE_URL"
	envSuccessMessageTTL = "SUCCESS_MESSAGE_TTL"
	envLogLevel          = "LOG_LEVEL"
	envLogFormat         = "LOG_FORMAT"
)

// dotEnvFiles are loaded before the environment is read. Variables already
// set in the process environment are not overridden.
var dotEnvFiles = []string{".env"}

func parseEnv(cfg *Config) error {
	for _, f := range dotEnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	if v, ok := os.LookupEnv(envAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envSuccessMessageTTL); ok && v != "" {
		d, err := parseTTL(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envSuccessMessageTTL, err)
		}
		cfg.SuccessMessageTTL = d
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	return nil
}

// parseTTL accepts "3s" style durations or whole seconds.
func parseTTL(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
