package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/secondwear/internal/flagx"
	"github.com/dmitrijs2005/secondwear/internal/timex"
)

// JsonConfig is the file representation of Config. Pointer fields tell
// "absent" from "zero" so a partial file only overrides what it names.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DatabasePath   *string         `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit"`
	RateBurst      *int            `json:"rate_burst"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`

	ImageBucket        *string `json:"image_bucket"`
	ImageRegion        *string `json:"image_region"`
	ImageEndpoint      *string `json:"image_endpoint"`
	ImagePublicBaseURL *string `json:"image_public_base_url"`
	ImageAccessKey     *string `json:"image_access_key"`
	ImageSecretKey     *string `json:"image_secret_key"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
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

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.RateBurst != nil {
		cfg.RateBurst = *jc.RateBurst
	}
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.ImageBucket, jc.ImageBucket)
	setString(&cfg.ImageRegion, jc.ImageRegion)
	setString(&cfg.ImageEndpoint, jc.ImageEndpoint)
	setString(&cfg.ImagePublicBaseURL, jc.ImagePublicBaseURL)
	setString(&cfg.ImageAccessKey, jc.ImageAccessKey)
	setString(&cfg.ImageSecretKey, jc.ImageSecretKey)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
