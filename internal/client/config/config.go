package config

import (
	"time"

	"github.com/dmitrijs2005/usermanager/internal/common"
)

// Config holds runtime settings for the admin client.
type Config struct {
	// APIBaseURL is the backend root, e.g. http://localhost:9090/api.
	APIBaseURL string

	// SuccessMessageTTL is how long success banners stay visible.
	SuccessMessageTTL time.Duration

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with the built-in defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = common.DefaultAPIBaseURL
	c.SuccessMessageTTL = 3 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig applies defaults, then the JSON file, the environment and the
// command-line flags found in args (usually os.Args[1:]). Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
