// Package config loads runtime configuration for the admin client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables, after loading a .env file from the working
//     directory when one exists.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL (default http://localhost:9090/api)
//	-t int      success message lifetime in seconds (default 3)
//	-l string   log level: debug, info, warn, error
//
// Environment
//
//	API_BASE_URL          backend base URL
//	SUCCESS_MESSAGE_TTL   "3s" style duration or whole seconds
//	LOG_LEVEL             log level
//	LOG_FORMAT            text or json
//
// # JSON schema
//
// Durations use timex.Duration, so "3s" and integer nanoseconds both work.
// Missing keys keep their earlier value:
//
//	{
//	  "api_base_url": "http://localhost:9090/api",
//	  "success_message_ttl": "3s",
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
package config
