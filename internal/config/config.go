package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultIntervalMS = 16
	DefaultFPS        = 30
	DefaultTheme      = "ember"
	DefaultDataDir    = ".flame64"
)

// Config holds everything the host application needs: the evolution
// cadence, the viewer refresh rate and theme, and where snapshots go.
// The engine itself reads none of this directly.
type Config struct {
	IntervalMS int    `yaml:"interval_ms"`
	FPS        int    `yaml:"fps"`
	Theme      string `yaml:"theme"`
	DataDir    string `yaml:"data_dir"`
	Seed       int64  `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		IntervalMS: DefaultIntervalMS,
		FPS:        DefaultFPS,
		Theme:      DefaultTheme,
		DataDir:    DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.IntervalMS <= 0 {
		return fmt.Errorf("interval_ms must be positive, got %d", c.IntervalMS)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}

// Interval converts the configured tick cadence to a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}
