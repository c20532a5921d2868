// Package config loads runtime configuration for the secondwear client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed with SECONDWEAR_.
//  4. Command-line flags, which override everything else.
//
// The result is validated before it is returned.
//
// Supported flags
//
//	-a string   base URL of the marketplace API
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "database_path": "secondwear.db",
//	  "request_timeout": "15s",
//	  "rate_limit": 10,
//	  "log_level": "info",
//	  "log_format": "text",
//	  "image_bucket": "listings",
//	  "image_region": "us-east-1"
//	}
package config
