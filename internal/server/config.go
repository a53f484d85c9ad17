package server

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds server settings, populated from IMPORTFILTER_* environment
// variables.
type Config struct {
	// Addr is the listen address.
	Addr string `envconfig:"ADDR" default:":8080"`
	// MaxUploadBytes caps the size of an uploaded dataset.
	MaxUploadBytes int64 `envconfig:"MAX_UPLOAD_BYTES" default:"104857600"`
	// PreviewRows caps the number of rows returned by the filter endpoint.
	PreviewRows int `envconfig:"PREVIEW_ROWS" default:"1000"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("IMPORTFILTER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
