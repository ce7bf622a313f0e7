// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server *serverConfig
	LLM    *llmConfig
}

type serverConfig struct {
	Address        string        `envconfig:"ALIGNER_ADDRESS" default:":8080"`
	LogLevel       string        `envconfig:"ALIGNER_LOG_LEVEL" default:"info"`
	AllowedOrigins []string      `envconfig:"ALIGNER_ALLOWED_ORIGINS" default:"*"`
	ReadTimeout    time.Duration `envconfig:"ALIGNER_READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `envconfig:"ALIGNER_WRITE_TIMEOUT" default:"180s"`
	PDFTimeout     time.Duration `envconfig:"ALIGNER_PDF_TIMEOUT" default:"30s"`
}

type llmConfig struct {
	APIKey          string        `envconfig:"GEMINI_API_KEY" default:""`
	StandardModel   string        `envconfig:"ALIGNER_STANDARD_MODEL" default:"gemini-2.5-flash"`
	AdvancedModel   string        `envconfig:"ALIGNER_ADVANCED_MODEL" default:"gemini-2.5-pro"`
	DialogueModel   string        `envconfig:"ALIGNER_DIALOGUE_MODEL" default:""`
	GenerateTimeout time.Duration `envconfig:"ALIGNER_GENERATE_TIMEOUT" default:"120s"`
}

// New reads configuration from the environment.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings a running service cannot do without.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}
