package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SpeedMs != 500 || cfg.PlayTicks != 50 || cfg.Format != "json" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asciimator.yaml")
	data := "speed_ms: 120\nformat: yaml\nexport:\n  scale: 3\nmqtt:\n  url: tcp://localhost:1883\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SpeedMs != 120 || cfg.Format != "yaml" || cfg.Export.Scale != 3 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	// Untouched nested fields keep their defaults.
	if cfg.Export.Foreground != "#e0e0e0" || cfg.Mqtt.Topic != "asciimator/frames" {
		t.Errorf("Defaults lost: %+v", cfg)
	}
	if cfg.Mqtt.URL != "tcp://localhost:1883" {
		t.Errorf("Expected mqtt url, got %q", cfg.Mqtt.URL)
	}
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	os.WriteFile(path, []byte("speed_ms: [1"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for broken config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero speed", func(c *Config) { c.SpeedMs = 0 }},
		{"negative ticks", func(c *Config) { c.PlayTicks = -1 }},
		{"unknown format", func(c *Config) { c.Format = "xml" }},
		{"zero scale", func(c *Config) { c.Export.Scale = 0 }},
		{"zero workers", func(c *Config) { c.Export.Workers = 0 }},
		{"bad colour", func(c *Config) { c.Export.Foreground = "white" }},
		{"bad qos", func(c *Config) { c.Mqtt.QoS = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	os.WriteFile(path, nil, 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SpeedMs != 500 {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}
