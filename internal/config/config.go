// Package config loads layered runtime configuration: .env file, optional
// YAML config file, environment overrides, then defaults and validation.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Prompt style tokens accepted in config.
const (
	StyleWithOptions    = "with_options"
	StyleWithoutOptions = "without_options"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Gemini GeminiConfig `yaml:"gemini"`
	Prompt PromptConfig `yaml:"prompt"`
	Media  MediaConfig  `yaml:"media"`
	Sheets SheetsConfig `yaml:"sheets"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type GeminiConfig struct {
	APIKey          string  `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model           string  `yaml:"model" env:"CLIPLENS_MODEL"`
	Temperature     float32 `yaml:"temperature"`
	MaxOutputTokens int32   `yaml:"max_output_tokens"`
}

type PromptConfig struct {
	Style      string `yaml:"style"`
	LabelsFile string `yaml:"labels_file"`
	LabelsURL  string `yaml:"labels_url"`
}

// MediaConfig lists the places a platform video id is looked up, in fallback
// order: HTTP archive bases first, then S3 buckets via the AWS SDK.
type MediaConfig struct {
	HTTPBases []string   `yaml:"http_bases"`
	S3Sources []S3Source `yaml:"s3_sources"`
}

type S3Source struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" env:"GOOGLE_SHEETS_ID"`
	CredentialsFile string `yaml:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS"`
	SheetName       string `yaml:"sheet_name"`
}

// Enabled reports whether spreadsheet persistence is configured.
func (s SheetsConfig) Enabled() bool {
	return s.SpreadsheetID != "" && s.CredentialsFile != ""
}

// Load reads configuration in layers. A missing config file is not an error
// unless the path was set explicitly via CLIPLENS_CONFIG or the path
// argument; environment variables and defaults are enough to run.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("CLIPLENS_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		path = "cliplens.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults plus environment only.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if v := os.Getenv("CLIPLENS_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if cfg.Sheets.SpreadsheetID == "" {
		cfg.Sheets.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_ID")
	}
	if cfg.Sheets.CredentialsFile == "" {
		cfg.Sheets.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.7
	}
	if c.Gemini.MaxOutputTokens == 0 {
		c.Gemini.MaxOutputTokens = 2048
	}
	if c.Prompt.Style == "" {
		c.Prompt.Style = StyleWithOptions
	}
	if c.Sheets.SheetName == "" {
		c.Sheets.SheetName = "Sheet1"
	}
}

// validate checks ranges and tokens. The API key is deliberately not
// required here: the auth package resolves it later, with a GPG fallback the
// config layer knows nothing about.
func (c *Config) validate() error {
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 1 {
		return fmt.Errorf("gemini.temperature must be between 0.0 and 1.0, got %.2f", c.Gemini.Temperature)
	}
	if c.Gemini.MaxOutputTokens < 512 || c.Gemini.MaxOutputTokens > 8192 {
		return fmt.Errorf("gemini.max_output_tokens must be between 512 and 8192, got %d", c.Gemini.MaxOutputTokens)
	}
	if c.Prompt.Style != StyleWithOptions && c.Prompt.Style != StyleWithoutOptions {
		return fmt.Errorf("prompt.style must be %q or %q, got %q", StyleWithOptions, StyleWithoutOptions, c.Prompt.Style)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	for i, s := range c.Media.S3Sources {
		if s.Bucket == "" {
			return fmt.Errorf("media.s3_sources[%d] is missing a bucket", i)
		}
	}
	return nil
}
