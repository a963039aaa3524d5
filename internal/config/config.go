package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

type Config struct {
	SpeedMs       int    `yaml:"speed_ms"`
	PlayTicks     int    `yaml:"play_ticks"`
	AnimationsDir string `yaml:"animations_dir"`
	Format        string `yaml:"format"`
	LogFile       string `yaml:"log_file"`
	LoadPath      string `yaml:"load"`

	Export ExportConfig `yaml:"export"`
	Mqtt   MqttConfig   `yaml:"mqtt"`

	BuildVersion string `yaml:"-"`
}

type ExportConfig struct {
	Scale      int    `yaml:"scale"`
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Workers    int    `yaml:"workers"`
	ShowStats  bool   `yaml:"show_stats"`
}

type MqttConfig struct {
	URL      string `yaml:"url"`
	Topic    string `yaml:"topic"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      byte   `yaml:"qos"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		SpeedMs:       500,
		PlayTicks:     50,
		AnimationsDir: "animations",
		Format:        "json",
		Export: ExportConfig{
			Scale:      2,
			Foreground: "#e0e0e0",
			Background: "#101010",
			Workers:    runtime.NumCPU(),
		},
		Mqtt: MqttConfig{
			Topic: "asciimator/frames",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the editor cannot work with.
func (c *Config) Validate() error {
	if c.SpeedMs <= 0 {
		return fmt.Errorf("speed_ms must be positive, got %d", c.SpeedMs)
	}
	if c.PlayTicks <= 0 {
		return fmt.Errorf("play_ticks must be positive, got %d", c.PlayTicks)
	}
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("format must be json or yaml, got %q", c.Format)
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("export.scale must be positive, got %d", c.Export.Scale)
	}
	if c.Export.Workers <= 0 {
		return fmt.Errorf("export.workers must be positive, got %d", c.Export.Workers)
	}
	if _, err := colorful.Hex(c.Export.Foreground); err != nil {
		return fmt.Errorf("export.foreground: %w", err)
	}
	if _, err := colorful.Hex(c.Export.Background); err != nil {
		return fmt.Errorf("export.background: %w", err)
	}
	if c.Mqtt.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.Mqtt.QoS)
	}
	return nil
}
