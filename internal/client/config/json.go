package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/usermanager/internal/flagx"
	"github.com/dmitrijs2005/usermanager/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// a missing key apart from an empty one.
type JsonConfig struct {
	APIBaseURL        *string         `json:"api_base_url"`
	SuccessMessageTTL *timex.Duration `json:"success_message_ttl"`
	LogLevel          *string         `json:"log_level"`
	LogFormat         *string         `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config in args. It is a
// no-op when no file is given.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.SuccessMessageTTL != nil {
		cfg.SuccessMessageTTL = jc.SuccessMessageTTL.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	return nil
}
