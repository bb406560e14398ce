package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("CONFIG_FILE")
	os.Unsetenv("SINK_FAILURE")
	os.Unsetenv("ENVIRONMENT")
	os.Unsetenv("DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.SinkFailure != "soft" {
		t.Errorf("SinkFailure = %q", cfg.SinkFailure)
	}
	if !cfg.EmbedImages {
		t.Error("EmbedImages should default to true")
	}
	if !cfg.Debug {
		t.Error("Debug should default to true outside prod")
	}
}

func TestLoadDebugDefaultsByEnvironment(t *testing.T) {
	os.Unsetenv("DEBUG")
	t.Setenv("ENVIRONMENT", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Debug {
		t.Error("Debug should default to false in prod")
	}

	t.Setenv("DEBUG", "true")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Debug {
		t.Error("DEBUG=true should win over the prod default")
	}
}

func TestLoadRejectsBadSinkFailure(t *testing.T) {
	t.Setenv("SINK_FAILURE", "sometimes")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid SINK_FAILURE")
	}
}

func TestConfigFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"9090\"\naws_bucket: override-bucket\nembed_images: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want file override", cfg.Port)
	}
	if cfg.AWSBucket != "override-bucket" {
		t.Errorf("AWSBucket = %q", cfg.AWSBucket)
	}
	if cfg.EmbedImages {
		t.Error("EmbedImages should be overridden to false")
	}
}
