package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the client.
//
// Image* fields configure the S3-compatible bucket used for item pictures;
// with an empty ImageBucket pictures are replaced by placeholders.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL" validate:"required,url"`
	DatabasePath   string        `env:"DATABASE_PATH" validate:"required"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gte=0"`
	RateLimit      float64       `env:"RATE_LIMIT" validate:"gte=0"`
	RateBurst      int           `env:"RATE_BURST" validate:"gte=0"`
	LogLevel       string        `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat      string        `env:"LOG_FORMAT" validate:"oneof=text json"`

	ImageBucket        string `env:"IMAGE_BUCKET"`
	ImageRegion        string `env:"IMAGE_REGION" validate:"required_with=ImageBucket"`
	ImageEndpoint      string `env:"IMAGE_ENDPOINT" validate:"omitempty,url"`
	ImagePublicBaseURL string `env:"IMAGE_PUBLIC_BASE_URL" validate:"omitempty,url"`
	ImageAccessKey     string `env:"IMAGE_ACCESS_KEY"`
	ImageSecretKey     string `env:"IMAGE_SECRET_KEY" validate:"required_with=ImageAccessKey"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.DatabasePath = "secondwear.db"
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 10
	c.RateBurst = 5
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ImageRegion = "us-east-1"
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load builds a Config from defaults, the JSON file, the environment and the
// flags found in args (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
