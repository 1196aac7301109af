package stream

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the streaming server settings.
type Config struct {
	Addr   string `yaml:"addr"`   // e.g. :8080
	FPS    int    `yaml:"fps"`    // sampling rate of the live loop
	Loop   bool   `yaml:"loop"`   // restart tracks when they end
	Script string `yaml:"script"` // path to a keyframe script
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{Addr: ":8080", FPS: 60, Loop: true}
}

// Load reads a YAML config file. Fields missing from the file keep their
// DefaultConfig values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := DefaultConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("stream: parse config %s: %w", path, err)
	}
	if c.FPS < 0 {
		return nil, fmt.Errorf("stream: config %s: fps %d must not be negative", path, c.FPS)
	}
	return &c, nil
}

// Save writes c as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
