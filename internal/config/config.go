package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	DatabaseURL string
	// Blob storage
	AWSAccessKey string
	AWSSecretKey string
	AWSBucket    string
	AWSRegion    string
	// Enterprise scraping
	ApifyToken string
	// Enterprise document conversion
	AzureEndpoint string
	AzureKey      string
	// EmbedImages selects inline data-URI embedding (true) or source URL
	// references (false) for scraped images.
	EmbedImages bool
	// SinkFailure is "soft" (degrade with a warning) or "hard" (fail the
	// request) when blob storage is unavailable.
	SinkFailure string
	// LogDir, when set, mirrors logs into timestamped files there.
	LogDir string
	Debug  bool
}

// fileConfig mirrors Config for the optional YAML override file. Only
// non-empty values override the environment.
type fileConfig struct {
	Port          string `yaml:"port"`
	Environment   string `yaml:"environment"`
	CORSOrigins   string `yaml:"cors_origins"`
	DatabaseURL   string `yaml:"database_url"`
	AWSAccessKey  string `yaml:"aws_access_key"`
	AWSSecretKey  string `yaml:"aws_secret_key"`
	AWSBucket     string `yaml:"aws_bucket"`
	AWSRegion     string `yaml:"aws_region"`
	ApifyToken    string `yaml:"apify_token"`
	AzureEndpoint string `yaml:"azure_endpoint"`
	AzureKey      string `yaml:"azure_key"`
	EmbedImages   *bool  `yaml:"embed_images"`
	SinkFailure   string `yaml:"sink_failure"`
	LogDir        string `yaml:"log_dir"`
}

// Load reads configuration from the environment, then applies the YAML file
// named by CONFIG_FILE (if any) on top.
func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		AWSAccessKey:  getEnv("AWS_SERVER_PUBLIC_KEY", ""),
		AWSSecretKey:  getEnv("AWS_SERVER_SECRET_KEY", ""),
		AWSBucket:     getEnv("AWS_BUCKET_NAME", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ApifyToken:    getEnv("APIFY_TOKEN", ""),
		AzureEndpoint: getEnv("AZURE_DOCUMENT_ENDPOINT", ""),
		AzureKey:      getEnv("AZURE_DOCUMENT_KEY", ""),
		EmbedImages:   getEnv("EMBED_IMAGES", "true") == "true",
		SinkFailure:   getEnv("SINK_FAILURE", "soft"),
		LogDir:        getEnv("LOG_DIR", ""),
		Debug:         getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if cfg.SinkFailure != "soft" && cfg.SinkFailure != "hard" {
		return nil, fmt.Errorf("SINK_FAILURE must be \"soft\" or \"hard\", got %q", cfg.SinkFailure)
	}

	return cfg, nil
}

// applyFile overlays non-empty values from a YAML file onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	override(&cfg.Port, fc.Port)
	override(&cfg.Environment, fc.Environment)
	override(&cfg.CORSOrigins, fc.CORSOrigins)
	override(&cfg.DatabaseURL, fc.DatabaseURL)
	override(&cfg.AWSAccessKey, fc.AWSAccessKey)
	override(&cfg.AWSSecretKey, fc.AWSSecretKey)
	override(&cfg.AWSBucket, fc.AWSBucket)
	override(&cfg.AWSRegion, fc.AWSRegion)
	override(&cfg.ApifyToken, fc.ApifyToken)
	override(&cfg.AzureEndpoint, fc.AzureEndpoint)
	override(&cfg.AzureKey, fc.AzureKey)
	override(&cfg.SinkFailure, fc.SinkFailure)
	override(&cfg.LogDir, fc.LogDir)
	if fc.EmbedImages != nil {
		cfg.EmbedImages = *fc.EmbedImages
	}
	return nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
